package types

import "strings"

// WeekLabel classifies a source URL by its week query parameter.
type WeekLabel string

const (
	ThisWeek   WeekLabel = "This week"
	NextWeek   WeekLabel = "Next week"
	FutureWeek WeekLabel = "Future week"
)

// WeekOrder is the display order for grouping hits in notifications.
var WeekOrder = []WeekLabel{ThisWeek, NextWeek, FutureWeek}

// SlotHit is one confirmed, in-scope availability finding: at least one
// bookable court was seen and the weekend-eligibility rule passed.
type SlotHit struct {
	URL           string
	Label         string   // date/day text from the page (e.g. "Wed 10.04."), search text as fallback
	SearchText    string   // e.g. "17:00 Badminton"
	Courts        []string // e.g. ["Court 2", "Court 5"], ascending
	IsWeekendDay  bool
	IsWeekendSlot bool
	WeekLabel     WeekLabel
}

// Signature encodes the hit for change detection: "label - court1, court2".
func (h *SlotHit) Signature() string {
	return h.Label + " - " + strings.Join(h.Courts, ", ")
}

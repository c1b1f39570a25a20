// Package notify renders the availability digest and delivers it over the
// configured channels. One message per notifying cycle, no in-cycle retries;
// the next scheduled cycle is the retry mechanism.
package notify

import (
	"strings"

	"badminton-bot/types"
)

// Notifier delivers one digest. Implementations log their own no-op cases.
type Notifier interface {
	Notify(hits []types.SlotHit) error
}

// Digest renders the plain-text notification body, hits grouped by week in
// display order.
func Digest(hits []types.SlotHit) string {
	byWeek := make(map[types.WeekLabel][]types.SlotHit)
	for _, hit := range hits {
		byWeek[hit.WeekLabel] = append(byWeek[hit.WeekLabel], hit)
	}

	var b strings.Builder
	b.WriteString("New schedule found:\n\n")
	for _, week := range types.WeekOrder {
		group := byWeek[week]
		if len(group) == 0 {
			continue
		}
		b.WriteString(string(week) + ":\n")
		for i := range group {
			b.WriteString("- " + group[i].Signature() + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"badminton-bot/types"

	"github.com/PuerkitoBio/goquery"
)

const maxCourtNumber = 6

var weekendDayRe = regexp.MustCompile(`(?i)(Sat|Sun)`)

// ExtractCourts scans a detail view's markup for the literal booking
// markers. The widget's exact structure shifts between site updates but the
// "Book court N" phrase does not, so a plain containment scan is the most
// stable extractor.
func ExtractCourts(markup string) []string {
	courts := make([]string, 0, maxCourtNumber)
	for n := 1; n <= maxCourtNumber; n++ {
		if strings.Contains(markup, fmt.Sprintf("Book court %d", n)) {
			courts = append(courts, fmt.Sprintf("Court %d", n))
		}
	}
	return courts
}

// ResolveLabel extracts the human-readable date/day text of a detail view.
// The first bold element wins, then the last heading-role list item, then
// the search text itself.
func ResolveLabel(markup, fallback string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fallback
	}
	if primary := strings.TrimSpace(doc.Find("b").First().Text()); primary != "" {
		return primary
	}
	if heading := strings.TrimSpace(doc.Find(`li[role="heading"]`).Last().Text()); heading != "" {
		return heading
	}
	return fallback
}

// IsWeekendDay reports whether a label names a weekend day ("Sat 12.04.").
func IsWeekendDay(label string) bool {
	return weekendDayRe.MatchString(label)
}

// SlotTime returns the time-of-day component of a search text
// ("17:00 Badminton" → "17:00").
func SlotTime(searchText string) string {
	if i := strings.Index(searchText, " "); i > 0 {
		return searchText[:i]
	}
	return searchText
}

// DeriveWeekLabel classifies a source URL by its week query parameter:
// 0 is this week, 1 the next, anything else a future week.
func DeriveWeekLabel(rawURL string) types.WeekLabel {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.FutureWeek
	}
	switch u.Query().Get("week") {
	case "0":
		return types.ThisWeek
	case "1":
		return types.NextWeek
	default:
		return types.FutureWeek
	}
}

package scraper

import (
	"context"
	"time"

	"badminton-bot/browser"
	"badminton-bot/config"
	"badminton-bot/types"

	log "github.com/sirupsen/logrus"
)

const (
	bookingMarker = "Book court"
	detailWait    = 8 * time.Second
)

// Navigator is the browser surface the orchestrator drives.
// *browser.Session is the production implementation.
type Navigator interface {
	Open(url string) error
	ClickFirst(text string) (bool, error)
	WaitForContent(marker string, timeout time.Duration) bool
	GoBack()
	Source() (string, error)
	Close()
}

// SessionFactory opens a fresh Navigator for one run.
type SessionFactory func(ctx context.Context) (Navigator, error)

// Scraper walks every configured URL × search text through the booking UI
// and collects the slots that pass the weekend filter.
type Scraper struct {
	cfg        *config.Config
	newSession SessionFactory
}

// New builds a Scraper backed by a real headless browser.
func New(cfg *config.Config) *Scraper {
	return NewWithSessions(cfg, func(ctx context.Context) (Navigator, error) {
		return browser.NewSession(ctx)
	})
}

// NewWithSessions builds a Scraper with a custom session factory.
func NewWithSessions(cfg *config.Config, factory SessionFactory) *Scraper {
	return &Scraper{cfg: cfg, newSession: factory}
}

// Run performs one full scrape. The browser session is closed on every exit
// path. Per-slot failures are logged and skipped; exceeding the global
// budget stops further URLs and returns the partial result.
func (s *Scraper) Run(ctx context.Context) ([]types.SlotHit, error) {
	nav, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	defer nav.Close()

	hits := make([]types.SlotHit, 0)
	start := time.Now()

	for _, url := range s.cfg.URLs {
		if time.Since(start) > s.cfg.ScrapeBudget {
			log.Printf("⏱ Global timeout reached, stopping scrape")
			break
		}

		log.Printf("🌐 Scraping URL: %s", url)
		if err := nav.Open(url); err != nil {
			log.Printf("⚠️ Error opening %s: %v", url, err)
			continue
		}

		for _, searchText := range s.cfg.SearchTexts {
			hit, err := s.inspectSlot(nav, url, searchText)
			if err != nil {
				log.Printf("⚠️ Error processing %q on %s: %v", searchText, url, err)
				continue
			}
			if hit != nil {
				log.Printf("  ✅ Found: %s", hit.Signature())
				hits = append(hits, *hit)
			}
		}
	}

	log.Printf("✅ Scrape completed in %.2fs, found %d slots", time.Since(start).Seconds(), len(hits))
	return hits, nil
}

// inspectSlot drives one search text on the already-open selection page.
// A nil hit with nil error means the slot is absent, empty or filtered out.
// Once a click happened the return navigation always runs, best-effort.
func (s *Scraper) inspectSlot(nav Navigator, url, searchText string) (*types.SlotHit, error) {
	clicked, err := nav.ClickFirst(searchText)
	if !clicked {
		// No navigation happened, so there is nothing to go back from.
		return nil, err
	}
	defer nav.GoBack()
	if err != nil {
		return nil, err
	}

	if !nav.WaitForContent(bookingMarker, detailWait) {
		log.Printf("  → No booking markers appeared for %q", searchText)
	}

	markup, err := nav.Source()
	if err != nil {
		return nil, err
	}

	courts := ExtractCourts(markup)
	if len(courts) == 0 {
		// Availability can be withdrawn between the click and the read.
		return nil, nil
	}

	label := ResolveLabel(markup, searchText)
	isWeekendDay := IsWeekendDay(label)
	isWeekendSlot := s.cfg.WeekendSlotTimes[SlotTime(searchText)]

	// Weekend days only offer the whitelisted times; weekdays take everything.
	if isWeekendDay && !isWeekendSlot {
		return nil, nil
	}

	return &types.SlotHit{
		URL:           url,
		Label:         label,
		SearchText:    searchText,
		Courts:        courts,
		IsWeekendDay:  isWeekendDay,
		IsWeekendSlot: isWeekendSlot,
		WeekLabel:     DeriveWeekLabel(url),
	}, nil
}

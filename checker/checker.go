package checker

import (
	"context"
	"sync/atomic"
	"time"

	"badminton-bot/notify"
	"badminton-bot/state"
	"badminton-bot/types"

	log "github.com/sirupsen/logrus"
)

// Scraper produces the current run's hits.
type Scraper interface {
	Run(ctx context.Context) ([]types.SlotHit, error)
}

// Checker runs the scrape → diff → notify → persist cycle: once immediately
// on Start, then on a fixed interval. Cycles never overlap; a tick that
// arrives while the previous cycle is still running is skipped.
type Checker struct {
	scraper   Scraper
	store     state.Store
	notifiers []notify.Notifier
	interval  time.Duration

	busy atomic.Bool
	stop chan struct{}
}

func New(scraper Scraper, store state.Store, notifiers []notify.Notifier, interval time.Duration) *Checker {
	return &Checker{
		scraper:   scraper,
		store:     store,
		notifiers: notifiers,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start blocks, running cycles until Stop is called.
func (c *Checker) Start() {
	log.Printf("🔍 Checker service started (interval: %s)", c.interval)
	c.RunOnce()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.RunOnce()
		case <-c.stop:
			log.Println("🛑 Checker service stopped")
			return
		}
	}
}

// Stop halts the timer after the current cycle, if any, completes.
func (c *Checker) Stop() {
	close(c.stop)
}

// RunOnce executes one full cycle. Every failure mode is contained here so
// the timer keeps firing no matter what went wrong inside a cycle.
func (c *Checker) RunOnce() {
	if !c.busy.CompareAndSwap(false, true) {
		log.Println("⏭ Previous cycle still running, skipping this tick")
		return
	}
	defer c.busy.Store(false)

	ts := time.Now().Format(time.RFC3339)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] ⚠️ Cycle panicked: %v", ts, r)
		}
	}()

	log.Printf("[%s] 🔍 Starting court availability scan...", ts)

	hits, err := c.scraper.Run(context.Background())
	if err != nil {
		log.Printf("[%s] ⚠️ Error during scrape: %v", ts, err)
		return
	}
	log.Printf("[%s] Scrape returned %d hits", ts, len(hits))

	current := state.Build(hits)
	previous, err := c.store.Load()
	if err != nil {
		log.Printf("[%s] ⚠️ Error loading previous state: %v (starting fresh)", ts, err)
		previous = state.State{}
	}
	log.Printf("[%s] Previous state: %d URLs, current state: %d URLs", ts, len(previous), len(current))

	cleaned := state.Reconcile(previous, current)
	if !state.Changed(current, cleaned) {
		log.Printf("[%s] No new schedule found or content has not changed.", ts)
		// Persist anyway so entries for rolled-off URLs get pruned.
		c.save(ts, current)
		return
	}

	log.Printf("[%s] 🆕 Found %d available slots, notifying...", ts, len(hits))
	for _, n := range c.notifiers {
		if err := n.Notify(hits); err != nil {
			log.Printf("[%s] ⚠️ Notification delivery failed: %v", ts, err)
		}
	}

	// The availability genuinely changed; record it even if delivery failed,
	// otherwise every following cycle would re-send the same digest.
	c.save(ts, current)
}

func (c *Checker) save(ts string, s state.State) {
	if err := c.store.Save(s); err != nil {
		log.Printf("[%s] ⚠️ Error saving state: %v", ts, err)
	}
}

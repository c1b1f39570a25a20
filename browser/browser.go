// Package browser wraps a single headless Chrome session behind the handful
// of primitives the scraper needs. Policy (retries, skipping, budgets) lives
// in the caller; this package only exposes the interactions.
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

const (
	pageWaitTimeout    = 12 * time.Second // slow first render on the booking site
	elementWaitTimeout = 8 * time.Second
	navWaitTimeout     = 8 * time.Second
	visibilityTimeout  = 5 * time.Second
	pollInterval       = 250 * time.Millisecond
)

// Session owns the browser process for one scrape run. Create, use from a
// single goroutine, then Close on every exit path.
type Session struct {
	ctx           context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	closeOnce     sync.Once
}

// NewSession starts a headless Chrome instance.
func NewSession(parent context.Context) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	return &Session{
		ctx:           browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

// Open loads a URL and waits for the page body to exist. The readiness wait
// is bounded and non-fatal; overall safety comes from the caller's budget.
func (s *Session) Open(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return err
	}
	s.waitForBody(pageWaitTimeout)
	return nil
}

// ClickFirst clicks the first element in document order whose visible text
// contains the literal substring. Returns false when nothing matches, which
// is a normal outcome, not an error.
func (s *Session) ClickFirst(text string) (bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, elementWaitTimeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(ctx,
		chromedp.Nodes(containsXPath(text), &nodes, chromedp.BySearch, chromedp.AtLeast(0)),
	)
	if err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}

	node := nodes[0]
	ids := []cdp.NodeID{node.NodeID}

	// Scroll and visibility are best-effort; a stubborn overlay should not
	// turn into a hard failure before the click is even attempted.
	_ = chromedp.Run(ctx, chromedp.ScrollIntoView(ids, chromedp.ByNodeID))
	visCtx, visCancel := context.WithTimeout(s.ctx, visibilityTimeout)
	_ = chromedp.Run(visCtx, chromedp.WaitVisible(ids, chromedp.ByNodeID))
	visCancel()

	if err := chromedp.Run(ctx, chromedp.MouseClickNode(node)); err != nil {
		return true, err
	}
	return true, nil
}

// WaitForContent polls the rendered markup until it contains marker. Timing
// out means "nothing appeared" and is reported as false, never as an error.
func (s *Session) WaitForContent(marker string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		src, err := s.Source()
		if err == nil && strings.Contains(src, marker) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// GoBack navigates browser history and waits for the page to settle,
// best-effort.
func (s *Session) GoBack() {
	ctx, cancel := context.WithTimeout(s.ctx, navWaitTimeout)
	defer cancel()
	_ = chromedp.Run(ctx, chromedp.NavigateBack())
	s.waitForBody(navWaitTimeout)
}

// Source returns the full rendered markup of the current page.
func (s *Session) Source() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, elementWaitTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.browserCancel()
		s.allocCancel()
	})
}

func (s *Session) waitForBody(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	_ = chromedp.Run(ctx, chromedp.WaitReady("body", chromedp.ByQuery))
}

func containsXPath(text string) string {
	return fmt.Sprintf(`//*[contains(normalize-space(.), "%s")]`, text)
}

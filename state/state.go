// Package state holds the last-notified availability per source URL and
// decides whether the current scrape differs from it.
package state

import (
	"bytes"
	"encoding/json"
	"sort"

	"badminton-bot/types"
)

// State maps a source URL to the sorted signature strings last observed
// there. Signatures within one URL are unique and sorted, which makes the
// comparison order-independent.
type State map[string][]string

// Normalize returns a canonical copy: URL keys sorted (JSON encoding sorts
// map keys), per-URL signatures deduplicated and sorted. Idempotent.
func Normalize(s State) State {
	normalized := make(State, len(s))
	for url, sigs := range s {
		seen := make(map[string]bool, len(sigs))
		out := make([]string, 0, len(sigs))
		for _, sig := range sigs {
			if !seen[sig] {
				out = append(out, sig)
				seen[sig] = true
			}
		}
		sort.Strings(out)
		normalized[url] = out
	}
	return normalized
}

// Build groups the current run's hits by source URL.
func Build(hits []types.SlotHit) State {
	s := make(State)
	for i := range hits {
		s[hits[i].URL] = append(s[hits[i].URL], hits[i].Signature())
	}
	return Normalize(s)
}

// Reconcile drops previous-state URLs that no longer appear in the current
// scrape. Without this a rolled-off week would keep the states unequal
// forever and either spam or mask notifications.
func Reconcile(previous, current State) State {
	cleaned := make(State, len(previous))
	for url, sigs := range previous {
		if _, ok := current[url]; ok {
			cleaned[url] = sigs
		}
	}
	return cleaned
}

// Changed reports whether the two states differ after normalization.
func Changed(current, previous State) bool {
	return !bytes.Equal(canonical(current), canonical(previous))
}

func canonical(s State) []byte {
	data, _ := json.Marshal(Normalize(s))
	return data
}

// Store persists notification state between cycles. Load treats missing or
// corrupt data as "no prior state" so a bad file costs one duplicate
// notification instead of a crash.
type Store interface {
	Load() (State, error)
	Save(State) error
}

package state

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"badminton-bot/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	s := State{
		"urlB": {"Wed 10.04. - Court 3", "Mon 08.04. - Court 1", "Mon 08.04. - Court 1"},
		"urlA": {"Sat 13.04. - Court 2"},
	}

	once := Normalize(s)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeOrderIndependent(t *testing.T) {
	a := State{"url": {"sig1", "sig2"}}
	b := State{"url": {"sig2", "sig1"}}
	assert.Equal(t, Normalize(a), Normalize(b))
}

func TestNormalizeDeduplicates(t *testing.T) {
	s := Normalize(State{"url": {"sig", "sig", "sig"}})
	assert.Equal(t, []string{"sig"}, s["url"])
}

func TestBuildGroupsByURL(t *testing.T) {
	hits := []types.SlotHit{
		{URL: "urlA", Label: "Mon 08.04.", Courts: []string{"Court 1"}},
		{URL: "urlA", Label: "Tue 09.04.", Courts: []string{"Court 2", "Court 4"}},
		{URL: "urlB", Label: "Wed 10.04.", Courts: []string{"Court 3"}},
	}

	s := Build(hits)
	require.Len(t, s, 2)
	assert.Equal(t, []string{"Mon 08.04. - Court 1", "Tue 09.04. - Court 2, Court 4"}, s["urlA"])
	assert.Equal(t, []string{"Wed 10.04. - Court 3"}, s["urlB"])
}

func TestNoSpuriousChangeOnIdenticalHits(t *testing.T) {
	hits := []types.SlotHit{
		{URL: "urlA", Label: "Mon 08.04.", Courts: []string{"Court 1"}},
		{URL: "urlB", Label: "Tue 09.04.", Courts: []string{"Court 2"}},
	}
	assert.False(t, Changed(Build(hits), Build(hits)))
}

func TestChangedWhenNewURLAppears(t *testing.T) {
	previous := State{"urlA": {"Mon - Court 1"}}
	current := State{
		"urlA": {"Mon - Court 1"},
		"urlB": {"Tue - Court 2"},
	}

	cleaned := Reconcile(previous, current)
	assert.Equal(t, State{"urlA": {"Mon - Court 1"}}, cleaned)
	assert.True(t, Changed(current, cleaned))
}

func TestReconcileDropsStaleURL(t *testing.T) {
	previous := State{
		"urlA": {"Mon - Court 1"},
		"urlC": {"Fri - Court 5"},
	}
	current := State{"urlA": {"Mon - Court 1"}}

	cleaned := Reconcile(previous, current)
	assert.NotContains(t, cleaned, "urlC")
	assert.False(t, Changed(current, cleaned))
}

func TestChangedIgnoresOrdering(t *testing.T) {
	a := State{"url": {"sig1", "sig2"}}
	b := State{"url": {"sig2", "sig1"}}
	assert.False(t, Changed(a, b))
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestFileStoreRoundTripIsCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(State{
		"urlB": {"zeta", "alpha", "alpha"},
		"urlA": {"beta"},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, State{
		"urlA": {"beta"},
		"urlB": {"alpha", "zeta"},
	}, loaded)

	// Persisted form is normalized: keys and signatures in sorted order.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, bytes.Index(raw, []byte("urlA")), bytes.Index(raw, []byte("urlB")))
	assert.Less(t, bytes.Index(raw, []byte("alpha")), bytes.Index(raw, []byte("zeta")))
}

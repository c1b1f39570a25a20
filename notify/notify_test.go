package notify

import (
	"strings"
	"testing"

	"badminton-bot/types"

	"github.com/stretchr/testify/assert"
)

func TestDigestGroupsByWeekInDisplayOrder(t *testing.T) {
	hits := []types.SlotHit{
		{Label: "Mon 15.04.", Courts: []string{"Court 1"}, WeekLabel: types.NextWeek},
		{Label: "Wed 10.04.", Courts: []string{"Court 2", "Court 5"}, WeekLabel: types.ThisWeek},
		{Label: "Sat 20.04.", Courts: []string{"Court 3"}, WeekLabel: types.NextWeek},
	}

	digest := Digest(hits)

	assert.True(t, strings.HasPrefix(digest, "New schedule found:\n\n"))
	assert.Contains(t, digest, "This week:\n- Wed 10.04. - Court 2, Court 5\n")
	assert.Contains(t, digest, "Next week:\n- Mon 15.04. - Court 1\n- Sat 20.04. - Court 3\n")
	assert.Less(t,
		strings.Index(digest, "This week:"),
		strings.Index(digest, "Next week:"),
		"weeks appear in display order regardless of hit order")
	assert.NotContains(t, digest, "Future week:", "empty groups are omitted")
}

func TestDigestFutureWeek(t *testing.T) {
	hits := []types.SlotHit{
		{Label: "Thu 25.04.", Courts: []string{"Court 6"}, WeekLabel: types.FutureWeek},
	}
	assert.Contains(t, Digest(hits), "Future week:\n- Thu 25.04. - Court 6\n")
}

func TestEmailNotifierNoHitsIsNoop(t *testing.T) {
	// No SMTP settings configured: a send attempt would error out, so a nil
	// return proves the empty case short-circuits.
	n := NewEmailNotifier(nil)
	assert.NoError(t, n.Notify(nil))
}

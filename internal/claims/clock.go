package claims

import (
	"time"

	"github.com/taskproof/taskproof/internal/model"
)

// ReservationWindow is how long a claim holds a task before it stops
// blocking. ExpiresAt is fixed at start time and never mutated.
const ReservationWindow = 7 * 24 * time.Hour

// Blocking reports whether the claim holds its task at `now`. This is the
// in-memory twin of the SQL predicate in internal/db: in_progress and not
// yet past its expiry.
func Blocking(c *model.Claim, now time.Time) bool {
	if c == nil || c.Status != model.ClaimInProgress {
		return false
	}
	return c.ExpiresAt == nil || c.ExpiresAt.After(now)
}

// Expired reports whether an in_progress claim has outlived its window. The
// stored status still reads in_progress; expiry is derived, never written.
func Expired(c *model.Claim, now time.Time) bool {
	if c == nil || c.Status != model.ClaimInProgress {
		return false
	}
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

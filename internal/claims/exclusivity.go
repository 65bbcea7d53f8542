package claims

import (
	"time"

	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
)

// Blocked is the exclusivity verdict for one (task, user) pair.
type Blocked struct {
	BySelf  bool
	ByOther bool
}

// IsBlocked decides whether the task is held at `now`, split by who holds
// it. Both halves use the same blocking predicate as the start transaction.
// This is an advisory read for projection; the race-free gate is the
// re-check inside db.StartClaim.
func IsBlocked(taskID, userID uint, now time.Time) (Blocked, error) {
	own, err := db.GetUserClaim(taskID, userID)
	if err != nil {
		return Blocked{}, err
	}
	return isBlockedWith(own, taskID, userID, now)
}

// isBlockedWith is IsBlocked for a caller that already fetched the user's
// claim, so projection does not read it twice.
func isBlockedWith(own *model.Claim, taskID, userID uint, now time.Time) (Blocked, error) {
	byOther, err := db.HasBlockingClaim(taskID, userID, now)
	if err != nil {
		return Blocked{}, err
	}
	return Blocked{
		BySelf:  Blocking(own, now),
		ByOther: byOther,
	}, nil
}

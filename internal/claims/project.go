package claims

import (
	"time"

	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
)

// Visibility is what one viewer may do with one task right now. It is a
// pure projection over current state, recomputed per request; caching it
// would hand out stale permissions.
type Visibility struct {
	CanStart          bool  `json:"can_start"`
	CanComplete       bool  `json:"can_complete"`
	InProgressByOther bool  `json:"in_progress"`
	ClaimID           *uint `json:"claim_id,omitempty"`
}

// Project computes the viewer's permission flags for a task by combining
// the exclusivity verdict with role and the viewer's own claim history. A
// nil viewer sees nothing actionable.
func Project(task *model.Task, viewer *model.User, now time.Time) (Visibility, error) {
	if viewer == nil {
		return Visibility{}, nil
	}
	own, err := db.GetUserClaim(task.ID, viewer.ID)
	if err != nil {
		return Visibility{}, err
	}
	blocked, err := isBlockedWith(own, task.ID, viewer.ID, now)
	if err != nil {
		return Visibility{}, err
	}
	completed := own != nil && own.Status == model.ClaimCompleted

	v := Visibility{
		CanStart:          viewer.IsClaimant() && task.IsActive && !blocked.BySelf && !blocked.ByOther && !completed,
		CanComplete:       blocked.BySelf,
		InProgressByOther: blocked.ByOther,
	}
	if own != nil {
		v.ClaimID = &own.ID
	}
	return v, nil
}

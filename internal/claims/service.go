package claims

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/internal/storage"
	"github.com/taskproof/taskproof/pkg/utils"
)

// Start reserves the task for the user for one ReservationWindow. The
// exclusivity check and the insert are serialized inside db.StartClaim, so
// two simultaneous starts on the same task cannot both succeed.
func Start(taskID uint, user *model.User) (*model.Claim, error) {
	if user == nil || !user.IsClaimant() {
		return nil, errors.WithStack(errs.ErrForbidden)
	}
	return db.StartClaim(taskID, user.ID, time.Now(), ReservationWindow)
}

// Complete validates the batch, stores every blob, then flips the claim to
// completed with its upload rows in one transaction. The batch is all or
// nothing: any failure removes what was already stored and leaves the claim
// in_progress.
func Complete(claimID uint, user *model.User, store *storage.Storage, batch []File) (*model.Claim, error) {
	if user == nil {
		return nil, errors.WithStack(errs.ErrForbidden)
	}
	claim, err := db.GetClaim(claimID)
	if err != nil {
		return nil, err
	}
	// foreign claims 404 rather than 403, same as an unknown id
	if claim.UserID != user.ID {
		return nil, errors.WithStack(errs.ErrClaimNotFound)
	}
	if claim.Status == model.ClaimCompleted {
		return nil, errors.WithStack(errs.ErrAlreadyCompleted)
	}
	now := time.Now()
	if Expired(claim, now) {
		return nil, errors.WithStack(errs.ErrClaimExpired)
	}
	if claim.Status != model.ClaimInProgress {
		return nil, errors.WithStack(errs.ErrClaimNotFound)
	}
	task, err := db.GetTask(claim.TaskID)
	if err != nil {
		return nil, err
	}
	if err = Validate(task, batch); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(batch))
	for i := range batch {
		p, err := storeFile(store, claim.ID, &batch[i])
		if err != nil {
			discard(store, paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	done, err := db.CompleteClaim(claim.ID, paths, now)
	if err != nil {
		discard(store, paths)
		return nil, err
	}
	return done, nil
}

func storeFile(store *storage.Storage, claimID uint, f *File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", errors.Wrapf(errs.ErrStorageFailure, "failed open %s: %v", f.Name, err)
	}
	defer rc.Close()
	p, err := store.Store(rc, fmt.Sprintf("claims/%d/%s", claimID, filepath.Base(f.Name)))
	if err != nil {
		return "", errors.Wrapf(errs.ErrStorageFailure, "failed store %s: %v", f.Name, err)
	}
	return p, nil
}

func discard(store *storage.Storage, paths []string) {
	for _, p := range paths {
		if err := store.Remove(p); err != nil {
			utils.Log.Warnf("failed remove stored file %s: %+v", p, err)
		}
	}
}

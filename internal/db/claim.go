package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/model"
)

// blockingCond is the single SQL form of the blocking predicate. Every
// query that decides whether a claim holds the task must use it, so listing,
// exclusivity checks and the start transaction can never disagree.
func blockingCond(tx *gorm.DB, now time.Time) *gorm.DB {
	return tx.Where("status = ?", model.ClaimInProgress).
		Where("expires_at IS NULL OR expires_at > ?", now)
}

func GetClaim(id uint) (*model.Claim, error) {
	var claim model.Claim
	if err := db.Preload("Uploads").First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.ErrClaimNotFound)
		}
		return nil, errors.Wrapf(err, "failed get claim")
	}
	return &claim, nil
}

// GetUserClaim returns the user's most recent claim on the task, or nil if
// the user never claimed it.
func GetUserClaim(taskID, userID uint) (*model.Claim, error) {
	var claim model.Claim
	err := db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("id DESC").
		First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed get user claim")
	}
	return &claim, nil
}

// HasBlockingClaim reports whether any user other than excludeUserID holds
// the task at `now`. excludeUserID zero means consider all users.
func HasBlockingClaim(taskID, excludeUserID uint, now time.Time) (bool, error) {
	tx := db.Model(&model.Claim{}).Where("task_id = ?", taskID)
	if excludeUserID != 0 {
		tx = tx.Where("user_id != ?", excludeUserID)
	}
	var total int64
	if err := blockingCond(tx, now).Count(&total).Error; err != nil {
		return false, errors.WithStack(err)
	}
	return total > 0, nil
}

func HasCompletedClaim(taskID, userID uint) (bool, error) {
	var total int64
	err := db.Model(&model.Claim{}).
		Where("task_id = ? AND user_id = ? AND status = ?", taskID, userID, model.ClaimCompleted).
		Count(&total).Error
	return total > 0, errors.WithStack(err)
}

// StartClaim creates the reservation if and only if no blocking claim
// exists. The check and the insert run in one transaction holding a lock on
// the task row, so two concurrent starts on the same task serialize; a plain
// read-then-insert would race.
func StartClaim(taskID, userID uint, now time.Time, window time.Duration) (*model.Claim, error) {
	expires := now.Add(window)
	claim := &model.Claim{
		TaskID:    taskID,
		UserID:    userID,
		Status:    model.ClaimInProgress,
		StartedAt: now,
		ExpiresAt: &expires,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := lockForUpdate(tx).First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrTaskNotFound
			}
			return errors.WithStack(err)
		}
		if !task.IsActive {
			return errs.ErrTaskInactive
		}
		var completed int64
		if err := tx.Model(&model.Claim{}).
			Where("task_id = ? AND user_id = ? AND status = ?", taskID, userID, model.ClaimCompleted).
			Count(&completed).Error; err != nil {
			return errors.WithStack(err)
		}
		if completed > 0 {
			return errs.ErrAlreadyClaimed
		}
		var blocking int64
		if err := blockingCond(tx.Model(&model.Claim{}).Where("task_id = ?", taskID), now).
			Count(&blocking).Error; err != nil {
			return errors.WithStack(err)
		}
		if blocking > 0 {
			return errs.ErrAlreadyClaimed
		}
		return errors.WithStack(tx.Create(claim).Error)
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// CompleteClaim attaches the upload rows and flips the claim to completed in
// one transaction. Status and expiry are re-checked inside the transaction
// so a late or duplicate request cannot complete twice.
func CompleteClaim(claimID uint, paths []string, now time.Time) (*model.Claim, error) {
	var claim model.Claim
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&claim, claimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrClaimNotFound
			}
			return errors.WithStack(err)
		}
		switch claim.Status {
		case model.ClaimInProgress:
		case model.ClaimCompleted:
			return errs.ErrAlreadyCompleted
		default:
			return errs.ErrClaimNotFound
		}
		if claim.ExpiresAt != nil && !claim.ExpiresAt.After(now) {
			return errs.ErrClaimExpired
		}
		uploads := make([]model.Upload, 0, len(paths))
		for _, p := range paths {
			uploads = append(uploads, model.Upload{ClaimID: claim.ID, FilePath: p})
		}
		if err := tx.Create(&uploads).Error; err != nil {
			return errors.WithStack(err)
		}
		claim.Status = model.ClaimCompleted
		claim.CompletedAt = &now
		if err := tx.Model(&claim).
			Updates(map[string]interface{}{"status": model.ClaimCompleted, "completed_at": now}).Error; err != nil {
			return errors.WithStack(err)
		}
		claim.Uploads = uploads
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func ListUserClaims(userID uint, page, pageSize int) ([]model.Claim, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}
	tx := db.Model(&model.Claim{}).Where("user_id = ?", userID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}
	var claims []model.Claim
	err := tx.Preload("Uploads").
		Order("started_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&claims).Error
	return claims, total, errors.WithStack(err)
}

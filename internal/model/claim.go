package model

import "time"

// Claim statuses. Expired is defined for schema compatibility but no code
// path writes it: expiry is derived from ExpiresAt at read time.
const (
	ClaimInProgress = "in_progress"
	ClaimCompleted  = "completed"
	ClaimExpired    = "expired"
	ClaimFailed     = "failed"
)

// Claim records one user's reservation against one task.
type Claim struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TaskID      uint       `gorm:"column:task_id;index:idx_claim_task_status;not null" json:"task_id"`
	UserID      uint       `gorm:"column:user_id;index:idx_claim_user;not null" json:"user_id"`
	Status      string     `gorm:"column:status;size:32;index:idx_claim_task_status;default:in_progress" json:"status"`
	StartedAt   time.Time  `gorm:"column:started_at" json:"started_at"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	Uploads     []Upload   `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"uploads,omitempty"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

func (Claim) TableName() string {
	return "user_claims"
}

package model

import "time"

// Upload is one stored evidence file. Rows are created only by a successful
// completion and never mutated; they go away only by cascade with the claim.
type Upload struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClaimID   uint      `gorm:"column:claim_id;index;not null" json:"claim_id"`
	FilePath  string    `gorm:"column:file_path;size:512;not null" json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// Task is a unit of work published by a manager. RequiredUploads is the
// exact number of evidence files a completion must supply.
type Task struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ManagerID       uint      `gorm:"column:manager_id;index:idx_task_manager;not null" json:"manager_id"`
	Name            string    `gorm:"column:task_name;size:255;not null" json:"name"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	RequiredUploads uint      `gorm:"column:required_uploads;not null" json:"required_uploads"`
	IsActive        bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

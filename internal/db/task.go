package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/model"
)

func CreateTask(t *model.Task) error {
	if t.RequiredUploads < 1 {
		return errors.New("required_uploads must be at least 1")
	}
	return errors.WithStack(db.Create(t).Error)
}

func GetTask(id uint) (*model.Task, error) {
	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.ErrTaskNotFound)
		}
		return nil, errors.Wrapf(err, "failed get task")
	}
	return &task, nil
}

// ListActiveTasks pages through active tasks, newest first. managerID
// restricts the listing to one manager's tasks; zero means no restriction.
func ListActiveTasks(managerID uint, page, pageSize int) ([]model.Task, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}
	tx := db.Model(&model.Task{}).Where("is_active = ?", true)
	if managerID != 0 {
		tx = tx.Where("manager_id = ?", managerID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}
	var tasks []model.Task
	err := tx.Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	return tasks, total, errors.WithStack(err)
}

// SetTaskActive toggles the soft-active flag. Only the owning manager may
// flip it.
func SetTaskActive(id, managerID uint, active bool) error {
	res := db.Model(&model.Task{}).
		Where("id = ? AND manager_id = ?", id, managerID).
		Update("is_active", active)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(errs.ErrTaskNotFound)
	}
	return nil
}

package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskproof/taskproof/internal/model"
)

func setup(t *testing.T) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Init(d)
}

func mustUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Role: role}
	require.NoError(t, CreateUser(u))
	return u
}

func mustTask(t *testing.T, managerID uint, required uint, active bool) *model.Task {
	t.Helper()
	task := &model.Task{
		ManagerID:       managerID,
		Name:            fmt.Sprintf("task by %d", managerID),
		RequiredUploads: required,
		IsActive:        active,
	}
	require.NoError(t, CreateTask(task))
	return task
}

package claims

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/internal/storage"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.Init(d)
	return d
}

func seedUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Role: role}
	require.NoError(t, db.CreateUser(u))
	return u
}

func seedTask(t *testing.T, manager *model.User, required uint) *model.Task {
	t.Helper()
	task := &model.Task{
		ManagerID:       manager.ID,
		Name:            "collect receipts",
		RequiredUploads: required,
		IsActive:        true,
	}
	require.NoError(t, db.CreateTask(task))
	return task
}

func memStore() *storage.Storage {
	return storage.NewWithFs(afero.NewMemMapFs())
}

func batchOf(names ...string) []File {
	batch := make([]File, 0, len(names))
	for _, name := range names {
		content := []byte("evidence for " + name)
		batch = append(batch, File{
			Name: name,
			Size: int64(len(content)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(content)), nil
			},
		})
	}
	return batch
}

// forceExpire rewrites expires_at into the past, simulating a claim whose
// window has elapsed while its stored status still reads in_progress.
func forceExpire(t *testing.T, d *gorm.DB, claimID uint) {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	require.NoError(t, d.Model(&model.Claim{}).
		Where("id = ?", claimID).
		Update("expires_at", past).Error)
}

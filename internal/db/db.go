package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/pkg/utils"
)

var db *gorm.DB

func Init(d *gorm.DB) {
	db = d
	if err := AutoMigrate(); err != nil {
		utils.Log.Fatalf("failed migrate database: %+v", err)
	}
}

func AutoMigrate() error {
	return errors.WithStack(db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Claim{},
		&model.Upload{},
	))
}

func Close() {
	sqlDB, err := db.DB()
	if err != nil {
		utils.Log.Errorf("failed to get underlying db: %+v", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		utils.Log.Errorf("failed to close db: %+v", err)
	}
}

// lockForUpdate takes a row lock where the dialect supports it. sqlite has
// no FOR UPDATE; its single-writer transactions already serialize the
// check-and-insert.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

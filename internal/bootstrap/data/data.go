package data

import (
	"github.com/google/uuid"

	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/pkg/utils"
)

func InitData() {
	initUsers()
}

// initUsers seeds a first manager account so a fresh install is usable. The
// generated password is printed once; change it after first login.
func initUsers() {
	total, err := db.CountUsers()
	if err != nil {
		utils.Log.Fatalf("failed to count users: %+v", err)
	}
	if total > 0 {
		return
	}
	password := uuid.NewString()[:12]
	admin := model.User{
		Username: "admin",
		Role:     model.RoleManager,
	}
	if err := admin.SetPassword(password); err != nil {
		utils.Log.Fatalf("failed to hash initial password: %+v", err)
	}
	if err := db.CreateUser(&admin); err != nil {
		utils.Log.Fatalf("failed to create initial manager: %+v", err)
	}
	utils.Log.Infof("created initial manager account, username: admin, password: %s", password)
}

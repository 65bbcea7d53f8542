package db

import (
	"github.com/pkg/errors"

	"github.com/taskproof/taskproof/internal/model"
)

func GetUserByName(username string) (*model.User, error) {
	user := model.User{Username: username}
	if err := db.Where(user).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "failed find user")
	}
	return &user, nil
}

func GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed get user by id")
	}
	return &user, nil
}

func CreateUser(u *model.User) error {
	return errors.WithStack(db.Create(u).Error)
}

func CountUsers() (int64, error) {
	var total int64
	err := db.Model(&model.User{}).Count(&total).Error
	return total, errors.WithStack(err)
}

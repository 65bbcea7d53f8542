package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// RoleManager creates tasks and reviews completions.
	RoleManager = "manager"
	// RoleUser claims tasks and uploads evidence.
	RoleUser = "user"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"column:username;uniqueIndex;size:255;not null" json:"username"`
	PwdHash   string    `gorm:"column:pwd_hash;size:255" json:"-"`
	Role      string    `gorm:"column:role;size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsClaimant reports whether the user may start claims on tasks.
func (u *User) IsClaimant() bool {
	return u.Role == RoleUser
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PwdHash = string(hash)
	return nil
}

func (u *User) ValidatePassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PwdHash), []byte(pwd))
}

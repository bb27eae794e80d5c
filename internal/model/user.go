package model

import (
	"Nexus/internal/pkg/consts"
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(254);not null;uniqueIndex:idx_email"`
	Username  string  `gorm:"type:varchar(150);not null;uniqueIndex:idx_username"`
	FirstName string  `gorm:"type:varchar(150);not null"`
	LastName  string  `gorm:"type:varchar(150)"`
	Password  *string `gorm:"type:varchar(255)"`
	IsAdmin   bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// RoleNames 返回用户在 Token 中携带的角色列表
func (u *User) RoleNames() []string {
	roles := []string{consts.RoleUser}
	if u.IsAdmin {
		roles = append(roles, consts.RoleAdmin)
	}
	return roles
}

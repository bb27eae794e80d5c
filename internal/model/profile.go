package model

import "time"

type Profile struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	UserID      uint64     `gorm:"not null;uniqueIndex:idx_profile_user" json:"user_id"`
	Bio         *string    `gorm:"type:varchar(500)" json:"bio,omitempty"`
	Location    *string    `gorm:"type:varchar(30)" json:"location,omitempty"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Website     *string    `gorm:"type:varchar(200)" json:"website,omitempty"`
	AvatarURL   *string    `gorm:"type:varchar(512);column:avatar_url" json:"avatar_url,omitempty"`
	IsVerified  bool       `gorm:"type:tinyint(1);default:0" json:"is_verified"`
	IsSuspended bool       `gorm:"type:tinyint(1);default:0" json:"is_suspended"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

package dto

import "time"

// UpdateProfileDTO 局部更新，nil 字段不修改
type UpdateProfileDTO struct {
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=30"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url,max=200"`
}

// CreateProfileDTO 管理员为任意账号创建资料
type CreateProfileDTO struct {
	UserID    uint64  `json:"user_id" binding:"required"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=30"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url,max=200"`
}

// ProfileViewDTO 对外展示的资料视图。
// is_following / follows_you 为三态：查看自己或未登录时缺省
type ProfileViewDTO struct {
	ID             uint64        `json:"id"`
	UserID         uint64        `json:"user_id"`
	User           SimpleUserDTO `json:"user"`
	Bio            *string       `json:"bio,omitempty"`
	Location       *string       `json:"location,omitempty"`
	BirthDate      *string       `json:"birth_date,omitempty"`
	Website        *string       `json:"website,omitempty"`
	AvatarURL      *string       `json:"avatar_url,omitempty"`
	IsVerified     bool          `json:"is_verified"`
	IsSuspended    bool          `json:"is_suspended"`
	CreatedAt      time.Time     `json:"created_at"`
	IsFollowing    *bool         `json:"is_following,omitempty"`
	FollowsYou     *bool         `json:"follows_you,omitempty"`
	FollowersCount *int64        `json:"followers_count,omitempty"`
	FollowingCount *int64        `json:"following_count,omitempty"`
}

// FollowDTO 关注边
type FollowDTO struct {
	ID          uint64    `json:"id"`
	FollowerID  uint64    `json:"follower_id"`
	FollowingID uint64    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

package model

import "time"

// Follow 有向关注边: follower 关注 following。
// (follower_id, following_id) 唯一，且数据层禁止自关注。
type Follow struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	FollowerID  uint64    `gorm:"not null;uniqueIndex:idx_follower_following;check:chk_no_self_follow,follower_id <> following_id" json:"follower_id"`
	FollowingID uint64    `gorm:"not null;uniqueIndex:idx_follower_following;index:idx_following_id" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

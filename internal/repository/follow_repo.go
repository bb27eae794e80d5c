package repository

import (
	"Nexus/internal/model"
	"context"

	"gorm.io/gorm"
)

type FollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint64) (int64, error)
	FollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
	CountFollowers(ctx context.Context, profileID uint64) (int64, error)
	CountFollowing(ctx context.Context, profileID uint64) (int64, error)
	ListFollowerIDs(ctx context.Context, profileID uint64) ([]uint64, error)
	ListFollowingIDs(ctx context.Context, profileID uint64) ([]uint64, error)
	ListFollowersIKnow(ctx context.Context, profileID, viewerID uint64) ([]uint64, error)
	FilterFollowing(ctx context.Context, viewerID uint64, ids []uint64) ([]uint64, error)
	FilterFollowers(ctx context.Context, viewerID uint64, ids []uint64) ([]uint64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

// CreateFollow 创建关注边。并发下由唯一索引仲裁，重复时返回 gorm.ErrDuplicatedKey
func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

// DeleteFollow 删除指定方向的关注边，返回受影响行数
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FollowExists 判断关注边是否存在
func (s *FollowRepoImpl) FollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountFollowers 获取粉丝数量，总是实时统计
func (s *FollowRepoImpl) CountFollowers(ctx context.Context, profileID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", profileID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// CountFollowing 获取关注数量，总是实时统计
func (s *FollowRepoImpl) CountFollowing(ctx context.Context, profileID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", profileID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// ListFollowerIDs 获取粉丝ID列表，按ID升序
func (s *FollowRepoImpl) ListFollowerIDs(ctx context.Context, profileID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", profileID).
		Order("follower_id asc").
		Pluck("follower_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// ListFollowingIDs 获取关注ID列表，按ID升序
func (s *FollowRepoImpl) ListFollowingIDs(ctx context.Context, profileID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", profileID).
		Order("following_id asc").
		Pluck("following_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// ListFollowersIKnow 获取目标粉丝与查看者关注列表的交集，单条SQL完成
func (s *FollowRepoImpl) ListFollowersIKnow(ctx context.Context, profileID, viewerID uint64) ([]uint64, error) {
	sub := s.db.Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)

	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ? AND follower_id IN (?)", profileID, sub).
		Order("follower_id asc").
		Pluck("follower_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// FilterFollowing 在 ids 中筛出查看者已关注的集合
func (s *FollowRepoImpl) FilterFollowing(ctx context.Context, viewerID uint64, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return []uint64{}, nil
	}
	followed := make([]uint64, 0, len(ids))
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", viewerID, ids).
		Pluck("following_id", &followed)
	if result.Error != nil {
		return nil, result.Error
	}
	return followed, nil
}

// FilterFollowers 在 ids 中筛出关注了查看者的集合
func (s *FollowRepoImpl) FilterFollowers(ctx context.Context, viewerID uint64, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return []uint64{}, nil
	}
	followers := make([]uint64, 0, len(ids))
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ? AND follower_id IN ?", viewerID, ids).
		Pluck("follower_id", &followers)
	if result.Error != nil {
		return nil, result.Error
	}
	return followers, nil
}

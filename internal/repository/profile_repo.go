package repository

import (
	"Nexus/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProfileRepo interface {
	GetProfileByID(ctx context.Context, id uint64) (*model.Profile, error)
	GetProfileByUserID(ctx context.Context, userID uint64) (*model.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []uint64) ([]*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) error
	DeleteProfile(ctx context.Context, id uint64) error
	ListAvatarKeys(ctx context.Context) ([]string, error)
}

type ProfileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &ProfileRepoImpl{db: db}
}

func (s *ProfileRepoImpl) GetProfileByID(ctx context.Context, id uint64) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).
		Preload("User").
		First(profile, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profile, nil
}

func (s *ProfileRepoImpl) GetProfileByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profile, nil
}

// GetProfilesByIDs 按ID升序批量获取
func (s *ProfileRepoImpl) GetProfilesByIDs(ctx context.Context, ids []uint64) ([]*model.Profile, error) {
	profiles := make([]*model.Profile, 0, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Order("id asc").
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

func (s *ProfileRepoImpl) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

// UpdateProfile 局部更新：nil 指针字段不触碰
func (s *ProfileRepoImpl) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(profile).Error
}

func (s *ProfileRepoImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("avatar_url", objectName).Error
}

// DeleteProfile 删除资料并级联删除其全部关注边与帖子
func (s *ProfileRepoImpl) DeleteProfile(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("follower_id = ? OR following_id = ?", id, id).
			Delete(&model.Follow{}).Error; err != nil {
			return err
		}

		postIDs := make([]uint64, 0)
		if err := tx.Model(&model.Post{}).
			Where("author_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := deletePostsCascade(tx, postIDs); err != nil {
			return err
		}

		return tx.Delete(&model.Profile{}, id).Error
	})
}

// ListAvatarKeys 列出所有仍被引用的头像对象名
func (s *ProfileRepoImpl) ListAvatarKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("avatar_url IS NOT NULL").
		Pluck("avatar_url", &keys)
	if result.Error != nil {
		return nil, result.Error
	}
	return keys, nil
}

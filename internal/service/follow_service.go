package service

import (
	"Nexus/internal/model"
	"Nexus/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// FollowService 维护资料之间的有向关注图。
// 服务本身无状态，并发下以存储层唯一索引为唯一仲裁，不做任何应用级加锁；
// 数量统计永远实时查询，不做写时维护。
type FollowService interface {
	Follow(ctx context.Context, followerID, targetID uint64) (*model.Follow, error)
	Unfollow(ctx context.Context, followerID, targetID uint64) error
	IsFollowing(ctx context.Context, viewerID, targetID uint64) (*bool, error)
	FollowsYou(ctx context.Context, viewerID, targetID uint64) (*bool, error)
	CountFollowers(ctx context.Context, profileID uint64) (int64, error)
	CountFollowing(ctx context.Context, profileID uint64) (int64, error)
	ListFollowers(ctx context.Context, profileID uint64) ([]uint64, error)
	ListFollowing(ctx context.Context, profileID uint64) ([]uint64, error)
	ListFollowersIKnow(ctx context.Context, profileID, viewerID uint64) ([]uint64, error)
}

type FollowServiceImpl struct {
	followRepo  repository.FollowRepo
	profileRepo repository.ProfileRepo
}

func NewFollowService(followRepo repository.FollowRepo, profileRepo repository.ProfileRepo) FollowService {
	return &FollowServiceImpl{
		followRepo:  followRepo,
		profileRepo: profileRepo,
	}
}

// Follow 创建 follower -> target 的关注边
func (s *FollowServiceImpl) Follow(ctx context.Context, followerID, targetID uint64) (*model.Follow, error) {
	if followerID == targetID {
		return nil, ErrFollowSelf
	}

	target, err := s.profileRepo.GetProfileByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrProfileNotFound
	}

	exists, err := s.followRepo.FollowExists(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFollowExist
	}

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: targetID,
		CreatedAt:   time.Now(),
	}
	err = s.followRepo.CreateFollow(ctx, follow)
	if err != nil {
		// 并发创建同一条边时由唯一索引裁决，落败方视为重复关注
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFollowExist
		}
		return nil, err
	}
	return follow, nil
}

// Unfollow 删除调用者自己的出边。边不存在或不属于调用者都报不存在，
// 重复调用不会静默成功
func (s *FollowServiceImpl) Unfollow(ctx context.Context, followerID, targetID uint64) error {
	affected, err := s.followRepo.DeleteFollow(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing 查看者是否关注目标。查看自己时返回 nil，不作布尔解释
func (s *FollowServiceImpl) IsFollowing(ctx context.Context, viewerID, targetID uint64) (*bool, error) {
	if viewerID == targetID {
		return nil, nil
	}
	exists, err := s.followRepo.FollowExists(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	return &exists, nil
}

// FollowsYou 目标是否关注查看者。查看自己时返回 nil
func (s *FollowServiceImpl) FollowsYou(ctx context.Context, viewerID, targetID uint64) (*bool, error) {
	if viewerID == targetID {
		return nil, nil
	}
	exists, err := s.followRepo.FollowExists(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	return &exists, nil
}

func (s *FollowServiceImpl) CountFollowers(ctx context.Context, profileID uint64) (int64, error) {
	return s.followRepo.CountFollowers(ctx, profileID)
}

func (s *FollowServiceImpl) CountFollowing(ctx context.Context, profileID uint64) (int64, error) {
	return s.followRepo.CountFollowing(ctx, profileID)
}

func (s *FollowServiceImpl) ListFollowers(ctx context.Context, profileID uint64) ([]uint64, error) {
	return s.followRepo.ListFollowerIDs(ctx, profileID)
}

func (s *FollowServiceImpl) ListFollowing(ctx context.Context, profileID uint64) ([]uint64, error) {
	return s.followRepo.ListFollowingIDs(ctx, profileID)
}

// ListFollowersIKnow 目标粉丝与查看者关注集的交集，按ID升序且无重复
func (s *FollowServiceImpl) ListFollowersIKnow(ctx context.Context, profileID, viewerID uint64) ([]uint64, error) {
	return s.followRepo.ListFollowersIKnow(ctx, profileID, viewerID)
}

package service

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/model"
	"Nexus/internal/pkg/consts"
	"Nexus/internal/pkg/minio"
	"Nexus/internal/pkg/util"
	"Nexus/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// ProfileService 资料生命周期与带关注注解的视图构建。
// 查看者身份一律通过参数显式传入，viewerUserID 为 0 表示未登录
type ProfileService interface {
	GetOrCreateMine(ctx context.Context, userID uint64) (*dto.ProfileViewDTO, error)
	GetMyProfileID(ctx context.Context, userID uint64) (uint64, error)
	UpdateMine(ctx context.Context, userID uint64, update *dto.UpdateProfileDTO) (*dto.ProfileViewDTO, error)
	DeleteMine(ctx context.Context, userID uint64) error
	GetProfile(ctx context.Context, profileID, viewerUserID uint64) (*dto.ProfileViewDTO, error)
	AdminCreate(ctx context.Context, create *dto.CreateProfileDTO) (*dto.ProfileViewDTO, error)
	UpdateAvatar(ctx context.Context, userID uint64, objectName string) (*dto.ProfileViewDTO, error)
	ListFollowers(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error)
	ListFollowing(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error)
	ListFollowersIKnow(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repository.ProfileRepo
	followRepo  repository.FollowRepo
	userRepo    repository.UserRepo
	followSvc   FollowService
}

func NewProfileService(
	profileRepo repository.ProfileRepo,
	followRepo repository.FollowRepo,
	userRepo repository.UserRepo,
	followSvc FollowService,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
		followSvc:   followSvc,
	}
}

// GetOrCreateMine 首次访问自己的资料时惰性创建
func (s *ProfileServiceImpl) GetOrCreateMine(ctx context.Context, userID uint64) (*dto.ProfileViewDTO, error) {
	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toView(profile), nil
}

// GetMyProfileID 返回调用者的资料ID，资料不存在时报不存在
func (s *ProfileServiceImpl) GetMyProfileID(ctx context.Context, userID uint64) (uint64, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}
	return profile.ID, nil
}

// UpdateMine 局部更新自己的资料，nil 字段不修改
func (s *ProfileServiceImpl) UpdateMine(ctx context.Context, userID uint64, update *dto.UpdateProfileDTO) (*dto.ProfileViewDTO, error) {
	if err := util.ValidateDTO(update); err != nil {
		return nil, err
	}

	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := &model.Profile{
		ID:       profile.ID,
		Bio:      update.Bio,
		Location: update.Location,
		Website:  update.Website,
	}
	if update.BirthDate != nil {
		birth, err := s.validateBirthDate(*update.BirthDate)
		if err != nil {
			return nil, err
		}
		patch.BirthDate = birth
	}

	if err = s.profileRepo.UpdateProfile(ctx, patch); err != nil {
		return nil, err
	}

	profile, err = s.profileRepo.GetProfileByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.toView(profile), nil
}

// DeleteMine 删除自己的资料，级联删除全部关注边与帖子
func (s *ProfileServiceImpl) DeleteMine(ctx context.Context, userID uint64) error {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}
	return s.profileRepo.DeleteProfile(ctx, profile.ID)
}

// GetProfile 公开资料视图。查看他人时附带实时数量，有资料的查看者
// 另有关注注解，查看自己时两者都缺省
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, profileID, viewerUserID uint64) (*dto.ProfileViewDTO, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	// 被封禁的资料照常返回，is_suspended 字段交给调用方处理
	view := s.toView(profile)

	viewer, err := s.viewerProfile(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	if viewer != nil && viewer.ID == profile.ID {
		return view, nil
	}

	// 注解只对有资料的查看者有意义，数量对自己以外的所有查看者都要给
	if viewer != nil {
		view.IsFollowing, err = s.followSvc.IsFollowing(ctx, viewer.ID, profile.ID)
		if err != nil {
			return nil, err
		}
		view.FollowsYou, err = s.followSvc.FollowsYou(ctx, viewer.ID, profile.ID)
		if err != nil {
			return nil, err
		}
	}

	followers, err := s.followSvc.CountFollowers(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followSvc.CountFollowing(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	view.FollowersCount = &followers
	view.FollowingCount = &following

	return view, nil
}

// AdminCreate 管理员为任意账号创建资料，校验与普通用户一致
func (s *ProfileServiceImpl) AdminCreate(ctx context.Context, create *dto.CreateProfileDTO) (*dto.ProfileViewDTO, error) {
	if err := util.ValidateDTO(create); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, create.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.profileRepo.GetProfileByUserID(ctx, create.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExist
	}

	profile := &model.Profile{
		UserID:   create.UserID,
		Bio:      create.Bio,
		Location: create.Location,
		Website:  create.Website,
	}
	if create.BirthDate != nil {
		profile.BirthDate, err = s.validateBirthDate(*create.BirthDate)
		if err != nil {
			return nil, err
		}
	}

	if err = s.profileRepo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExist
		}
		return nil, err
	}

	profile, err = s.profileRepo.GetProfileByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.toView(profile), nil
}

// UpdateAvatar 记录新头像的对象名。旧对象尽力删除，漏网的交给清理任务
func (s *ProfileServiceImpl) UpdateAvatar(ctx context.Context, userID uint64, objectName string) (*dto.ProfileViewDTO, error) {
	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := profile.AvatarURL
	if err = s.profileRepo.UpdateAvatar(ctx, profile.ID, objectName); err != nil {
		return nil, err
	}

	if old != nil && *old != objectName {
		if err = minio.DeleteFile(ctx, *old); err != nil {
			log.WarnContext(ctx, "failed to delete old avatar", "key", *old, "err", err)
		}
	}

	profile.AvatarURL = &objectName
	return s.toView(profile), nil
}

func (s *ProfileServiceImpl) ListFollowers(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error) {
	ids, err := s.resolveSubjectIDs(ctx, profileID, s.followSvc.ListFollowers)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, ids, viewerUserID, page, pageSize)
}

func (s *ProfileServiceImpl) ListFollowing(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error) {
	ids, err := s.resolveSubjectIDs(ctx, profileID, s.followSvc.ListFollowing)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, ids, viewerUserID, page, pageSize)
}

// ListFollowersIKnow 目标粉丝中查看者也关注的那部分
func (s *ProfileServiceImpl) ListFollowersIKnow(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error) {
	subject, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrProfileNotFound
	}

	viewer, err := s.viewerProfile(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return []*dto.ProfileViewDTO{}, nil
	}

	ids, err := s.followSvc.ListFollowersIKnow(ctx, profileID, viewer.ID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, ids, viewerUserID, page, pageSize)
}

func (s *ProfileServiceImpl) getOrCreate(ctx context.Context, userID uint64) (*model.Profile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &model.Profile{UserID: userID}
	err = s.profileRepo.CreateProfile(ctx, profile)
	if err != nil {
		// 并发首次访问时输给唯一索引的一方直接读已有记录
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.profileRepo.GetProfileByUserID(ctx, userID)
		}
		return nil, err
	}
	return s.profileRepo.GetProfileByID(ctx, profile.ID)
}

func (s *ProfileServiceImpl) viewerProfile(ctx context.Context, viewerUserID uint64) (*model.Profile, error) {
	if viewerUserID == 0 {
		return nil, nil
	}
	return s.profileRepo.GetProfileByUserID(ctx, viewerUserID)
}

func (s *ProfileServiceImpl) validateBirthDate(value string) (*time.Time, error) {
	birth, err := util.ParseDate(value)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if util.AgeAt(birth, time.Now()) < consts.MinAge {
		return nil, ErrAgeRestriction
	}
	return &birth, nil
}

func (s *ProfileServiceImpl) resolveSubjectIDs(
	ctx context.Context,
	profileID uint64,
	fetch func(context.Context, uint64) ([]uint64, error),
) ([]uint64, error) {
	subject, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrProfileNotFound
	}
	return fetch(ctx, profileID)
}

// buildViews 把有序ID序列分页后装配成资料视图。
// 注解只用两条集合过滤查询，杜绝逐行 N+1
func (s *ProfileServiceImpl) buildViews(ctx context.Context, ids []uint64, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error) {
	ids = paginateIDs(ids, page, pageSize)
	if len(ids) == 0 {
		return []*dto.ProfileViewDTO{}, nil
	}

	profiles, err := s.profileRepo.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	viewer, err := s.viewerProfile(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.ProfileViewDTO, 0, len(profiles))
	if viewer == nil {
		for _, p := range profiles {
			views = append(views, s.toView(p))
		}
		return views, nil
	}

	followingSet, err := s.followRepo.FilterFollowing(ctx, viewer.ID, ids)
	if err != nil {
		return nil, err
	}
	followerSet, err := s.followRepo.FilterFollowers(ctx, viewer.ID, ids)
	if err != nil {
		return nil, err
	}
	isFollowing := toIDSet(followingSet)
	followsYou := toIDSet(followerSet)

	for _, p := range profiles {
		view := s.toView(p)
		if p.ID != viewer.ID {
			f := isFollowing[p.ID]
			b := followsYou[p.ID]
			view.IsFollowing = &f
			view.FollowsYou = &b
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProfileServiceImpl) toView(profile *model.Profile) *dto.ProfileViewDTO {
	view := &dto.ProfileViewDTO{}
	_ = copier.Copy(view, profile)
	if profile.BirthDate != nil {
		birth := util.FormatDate(*profile.BirthDate)
		view.BirthDate = &birth
	}
	view.User = dto.SimpleUserDTO{
		Username:  profile.User.Username,
		FirstName: profile.User.FirstName,
		LastName:  profile.User.LastName,
	}
	return view
}

func paginateIDs(ids []uint64, page, pageSize int) []uint64 {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(ids) {
		return nil
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}

func toIDSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

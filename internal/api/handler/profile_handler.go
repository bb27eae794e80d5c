package handler

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/pkg/consts"
	"Nexus/internal/pkg/minio"
	"Nexus/internal/pkg/response"
	"Nexus/internal/pkg/util"
	"Nexus/internal/service"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetMe 获取自己的资料，首次访问时惰性创建
func (s *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	profile, err := s.profileSvc.GetOrCreateMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var update dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.profileSvc.UpdateMine(c.Request.Context(), userID, &update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) DeleteMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.profileSvc.DeleteMine(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AdminCreate 管理员为任意账号创建资料
func (s *ProfileHandler) AdminCreate(c *gin.Context) {
	var create dto.CreateProfileDTO
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.profileSvc.AdminCreate(c.Request.Context(), &create)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// Get 公开资料视图，登录查看他人时附带关注注解
func (s *ProfileHandler) Get(c *gin.Context) {
	viewerUserID := c.GetUint64("user_id")

	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	profile, err := s.profileSvc.GetProfile(c.Request.Context(), profileID, viewerUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// UploadAvatar 上传头像：限制1MiB、必须可解码为图片
func (s *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > consts.AvatarMaxSize {
		response.Error(c, service.ErrImageTooLarge)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(io.LimitReader(reader, consts.AvatarMaxSize+1))
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	if len(data) > consts.AvatarMaxSize {
		response.Error(c, service.ErrImageTooLarge)
		return
	}

	// 先嗅探文件头，不信任客户端声明的类型
	mime, err := util.GetSafeContentType(bytes.NewReader(data))
	if err != nil || !strings.HasPrefix(mime, consts.MimePrefixImage) {
		response.Error(c, service.ErrImageUndecodable)
		return
	}

	normalized, err := util.NormalizeAvatar(data)
	if err != nil {
		response.Error(c, service.ErrImageUndecodable)
		return
	}

	objectName := consts.AvatarPrefix + uuid.NewString() + ".png"
	_, err = minio.UploadFile(c.Request.Context(), objectName, bytes.NewReader(normalized), int64(len(normalized)), "image/png")
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	profile, err := s.profileSvc.UpdateAvatar(c.Request.Context(), userID, objectName)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 对外返回可直接访问的URL，库里只存对象名
	publicURL := minio.GetPublicURL(objectName)
	profile.AvatarURL = &publicURL
	response.Success(c, profile)
}

func (s *ProfileHandler) Followers(c *gin.Context) {
	s.listFollowRelation(c, s.profileSvc.ListFollowers)
}

func (s *ProfileHandler) Following(c *gin.Context) {
	s.listFollowRelation(c, s.profileSvc.ListFollowing)
}

func (s *ProfileHandler) FollowersIKnow(c *gin.Context) {
	s.listFollowRelation(c, s.profileSvc.ListFollowersIKnow)
}

type relationListFunc func(ctx context.Context, profileID, viewerUserID uint64, page, pageSize int) ([]*dto.ProfileViewDTO, error)

func (s *ProfileHandler) listFollowRelation(c *gin.Context, list relationListFunc) {
	viewerUserID := c.GetUint64("user_id")

	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)

	views, err := list(c.Request.Context(), profileID, viewerUserID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

func getPagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > consts.DefaultPageSize {
		pageSize = consts.DefaultPageSize
	}
	return page, pageSize
}

package handler

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/pkg/response"
	"Nexus/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc  service.FollowService
	profileSvc service.ProfileService
}

func NewFollowHandler(followSvc service.FollowService, profileSvc service.ProfileService) *FollowHandler {
	return &FollowHandler{
		followSvc:  followSvc,
		profileSvc: profileSvc,
	}
}

func (s *FollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")

	targetID, err := parseIDParam(c, "profile_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	myProfileID, err := s.profileSvc.GetMyProfileID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	follow, err := s.followSvc.Follow(c.Request.Context(), myProfileID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FollowDTO{
		ID:          follow.ID,
		FollowerID:  follow.FollowerID,
		FollowingID: follow.FollowingID,
		CreatedAt:   follow.CreatedAt,
	})
}

func (s *FollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")

	targetID, err := parseIDParam(c, "profile_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	myProfileID, err := s.profileSvc.GetMyProfileID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.followSvc.Unfollow(c.Request.Context(), myProfileID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

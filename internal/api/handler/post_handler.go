package handler

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/pkg/consts"
	"Nexus/internal/pkg/response"
	"Nexus/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var create dto.CreatePostDTO
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &create)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) Get(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ListByProfile 按作者分页列出帖子
func (s *PostHandler) ListByProfile(c *gin.Context) {
	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)

	posts, err := s.postSvc.ListPostsByProfile(c.Request.Context(), profileID, pageSize, (page-1)*pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) ListReplies(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)

	replies, err := s.postSvc.ListReplies(c.Request.Context(), postID, pageSize, (page-1)*pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, replies)
}

func (s *PostHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	isAdmin := slices.Contains(c.GetStringSlice("roles"), consts.RoleAdmin)

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), userID, isAdmin, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

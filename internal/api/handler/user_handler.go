package handler

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/pkg/response"
	"Nexus/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 注册新账号
func (s *UserHandler) Register(c *gin.Context) {
	var regDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&regDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userSvc.Register(c.Request.Context(), &regDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Login 用户名或邮箱 + 密码登录
func (s *UserHandler) Login(c *gin.Context) {
	var credential dto.CredentialDTO
	if err := c.ShouldBindJSON(&credential); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.userSvc.Login(c.Request.Context(), &credential)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.TokenDTO{Token: token})
}

// LoginGoogle 用Google授权码换取本站令牌
func (s *UserHandler) LoginGoogle(c *gin.Context) {
	var login dto.GoogleLoginDTO
	if err := c.ShouldBindJSON(&login); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.userSvc.LoginWithGoogle(c.Request.Context(), login.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.TokenDTO{Token: token})
}

// Logout 吊销当前令牌
func (s *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}

	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

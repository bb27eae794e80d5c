package service

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/model"
	"Nexus/internal/pkg/consts"
	"Nexus/internal/pkg/redis"
	"Nexus/internal/pkg/security"
	"Nexus/internal/pkg/util"
	"Nexus/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credential *dto.CredentialDTO) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	if err := util.ValidateDTO(regDTO); err != nil {
		return err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailExist
	}

	existing, err = s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:     regDTO.Email,
		Username:  regDTO.Username,
		FirstName: regDTO.FirstName,
		LastName:  regDTO.LastName,
		Password:  &passwordHash,
	}

	err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExist
		}
		return err
	}
	return nil
}

// Login username 字段同时接受用户名或邮箱
func (s *UserServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credential.Username)
	if err != nil {
		return "", err
	}
	if user == nil && strings.Contains(credential.Username, "@") {
		user, err = s.userRepo.GetUserByEmail(ctx, credential.Username)
		if err != nil {
			return "", err
		}
	}
	if user == nil || user.Password == nil {
		return "", ErrCredentialsIncorrect
	}

	if err = security.CheckPasswordHash(credential.Password, *user.Password); err != nil {
		return "", ErrCredentialsIncorrect
	}

	return security.GenerateToken(user.ID, user.RoleNames())
}

// LoginWithGoogle 用授权码完成 Google OAuth 登录，账号不存在则创建
func (s *UserServiceImpl) LoginWithGoogle(ctx context.Context, code string) (string, error) {
	googleUser, err := security.ExchangeGoogleCode(ctx, code)
	if err != nil {
		return "", ErrCredentialsIncorrect
	}

	user, err := s.userRepo.GetUserByEmail(ctx, googleUser.Email)
	if err != nil {
		return "", err
	}

	if user == nil {
		user = &model.User{
			Email:     googleUser.Email,
			Username:  s.deriveUsername(ctx, googleUser.Email),
			FirstName: googleUser.GivenName,
			LastName:  googleUser.FamilyName,
		}
		if err = s.userRepo.CreateUser(ctx, user); err != nil {
			// 同一邮箱并发首登，改读已有账号
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				user, err = s.userRepo.GetUserByEmail(ctx, googleUser.Email)
				if err != nil || user == nil {
					return "", UnExpectedError
				}
			} else {
				return "", err
			}
		}
	}

	return security.GenerateToken(user.ID, user.RoleNames())
}

// Logout 将 Token 签名加入黑名单直至其自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrParamInvalid
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "revoked", ttl)
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// deriveUsername 从邮箱推导用户名，冲突时追加随机后缀
func (s *UserServiceImpl) deriveUsername(ctx context.Context, email string) string {
	base := strings.SplitN(email, "@", 2)[0]
	existing, err := s.userRepo.GetUserByUsername(ctx, base)
	if err == nil && existing == nil {
		return base
	}
	return base + "-" + uuid.NewString()[:8]
}

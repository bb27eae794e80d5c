package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailExist           = errors.New("邮箱已注册")
	ErrUsernameExist        = errors.New("用户名已存在")
	ErrCredentialsIncorrect = errors.New("用户名或密码错误")
	ErrProfileNotFound      = errors.New("个人资料不存在")
	ErrProfileExist         = errors.New("你已拥有个人资料")
	ErrAgeRestriction       = errors.New("年龄未满13岁")
	ErrFollowSelf           = errors.New("不能关注自己")
	ErrFollowExist          = errors.New("已关注该用户")
	ErrFollowNotFound       = errors.New("关注关系不存在")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrContentRequired      = errors.New("帖子内容不能为空")
	ErrContentTooLong       = errors.New("帖子内容超出长度限制")
	ErrImageTooLarge        = errors.New("图片不能大于1MB")
	ErrImageUndecodable     = errors.New("文件不是有效的图片")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrEmailExist:           BadRequest,
	ErrUsernameExist:        BadRequest,
	ErrCredentialsIncorrect: Unauthorized,
	ErrProfileNotFound:      NotFound,
	ErrProfileExist:         BadRequest,
	ErrAgeRestriction:       BadRequest,
	ErrFollowSelf:           BadRequest,
	ErrFollowExist:          BadRequest,
	ErrFollowNotFound:       NotFound,
	ErrPostNotFound:         NotFound,
	ErrContentRequired:      BadRequest,
	ErrContentTooLong:       BadRequest,
	ErrImageTooLarge:        BadRequest,
	ErrImageUndecodable:     BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

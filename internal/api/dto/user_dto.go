package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Email     string `json:"email" binding:"required" validate:"required,email,max=254"`
	Username  string `json:"username" binding:"required" validate:"required,min=3,max=150"`
	Password  string `json:"password" binding:"required" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"required" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
}

// CredentialDTO 登录凭证，username 字段同时接受用户名或邮箱
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginDTO Google OAuth 授权码登录
type GoogleLoginDTO struct {
	Code string `json:"code" binding:"required"`
}

// TokenDTO 登录成功后签发的令牌
type TokenDTO struct {
	Token string `json:"token"`
}

// SimpleUserDTO 资料中内嵌的用户信息
type SimpleUserDTO struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

package api

import "Nexus/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	FollowHandler  *handler.FollowHandler
	PostHandler    *handler.PostHandler
}

package api

import (
	"Nexus/internal/api/middleware"
	"Nexus/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/login/google", group.UserHandler.LoginGoogle)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		profileGroup := apiGroup.Group("/profiles")
		{
			// 公开资料视图：登录与否都可访问，登录时附带关注注解
			authOptGroup := profileGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:profile_id", group.ProfileHandler.Get)
			}

			authGroup := profileGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/me", group.ProfileHandler.GetMe)
				authGroup.PATCH("/me", group.ProfileHandler.UpdateMe)
				authGroup.DELETE("/me", group.ProfileHandler.DeleteMe)
				authGroup.POST("/me/avatar", group.ProfileHandler.UploadAvatar)

				authGroup.GET("/:profile_id/followers", group.ProfileHandler.Followers)
				authGroup.GET("/:profile_id/following", group.ProfileHandler.Following)
				authGroup.GET("/:profile_id/followers-i-know", group.ProfileHandler.FollowersIKnow)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("", group.ProfileHandler.AdminCreate)
			}
		}

		followGroup := apiGroup.Group("/follows")
		{
			followGroup.Use(middleware.AuthMiddleware())
			{
				followGroup.POST("/:profile_id", group.FollowHandler.Follow)
				followGroup.DELETE("/:profile_id", group.FollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:post_id", group.PostHandler.Get)
				authOptGroup.GET("/:post_id/replies", group.PostHandler.ListReplies)
				authOptGroup.GET("/list/:profile_id", group.PostHandler.ListByProfile)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.Create)
				authGroup.DELETE("/:post_id", group.PostHandler.Delete)
			}
		}
	}

	return r
}

package wire

import (
	"Nexus/internal/api"
	"Nexus/internal/api/handler"
	"Nexus/internal/job"
	"Nexus/internal/pkg/cron"
	"Nexus/internal/repository"
	"Nexus/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	followRepo := repository.NewFollowRepo(db)
	postRepo := repository.NewPostRepo(db)

	userService := service.NewUserService(userRepo)
	followService := service.NewFollowService(followRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo, followRepo, userRepo, followService)
	postService := service.NewPostService(postRepo, profileRepo)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		ProfileHandler: handler.NewProfileHandler(profileService),
		FollowHandler:  handler.NewFollowHandler(followService, profileService),
		PostHandler:    handler.NewPostHandler(postService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewAvatarCleanupJob(profileRepo))

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
	}, nil
}

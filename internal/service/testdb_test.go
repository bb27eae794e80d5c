package service

import (
	"Nexus/internal/model"
	"Nexus/internal/repository"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 建一个内存数据库，每个测试独立，互不污染
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// 内存库随连接销毁，限制为单连接保证数据可见
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Follow{},
		&model.Post{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepo
	profileRepo repository.ProfileRepo
	followRepo  repository.FollowRepo
	postRepo    repository.PostRepo
	userSvc     UserService
	followSvc   FollowService
	profileSvc  ProfileService
	postSvc     PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	followRepo := repository.NewFollowRepo(db)
	postRepo := repository.NewPostRepo(db)

	followSvc := NewFollowService(followRepo, profileRepo)

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		userSvc:     NewUserService(userRepo),
		followSvc:   followSvc,
		profileSvc:  NewProfileService(profileRepo, followRepo, userRepo, followSvc),
		postSvc:     NewPostService(postRepo, profileRepo),
	}
}

// mustCreateProfile 建出用户和对应资料，返回资料
func (e *testEnv) mustCreateProfile(t *testing.T, username string) *model.Profile {
	t.Helper()

	user := &model.User{
		Email:     fmt.Sprintf("%s@example.com", username),
		Username:  username,
		FirstName: username,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	profile := &model.Profile{UserID: user.ID}
	if err := e.db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile for %s: %v", username, err)
	}
	return profile
}

// mustCreateUser 只建用户不建资料
func (e *testEnv) mustCreateUser(t *testing.T, username string) *model.User {
	t.Helper()

	user := &model.User{
		Email:     fmt.Sprintf("%s@example.com", username),
		Username:  username,
		FirstName: username,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) mustFollow(t *testing.T, followerID, targetID uint64) {
	t.Helper()
	if _, err := e.followSvc.Follow(t.Context(), followerID, targetID); err != nil {
		t.Fatalf("failed to follow %d -> %d: %v", followerID, targetID, err)
	}
}

package job

import (
	"Nexus/internal/pkg/consts"
	"Nexus/internal/pkg/logger"
	"Nexus/internal/pkg/minio"
	"Nexus/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// AvatarCleanupJob 清理对象存储中已不被任何资料引用的头像文件
type AvatarCleanupJob struct {
	profileRepo repository.ProfileRepo
}

func NewAvatarCleanupJob(profileRepo repository.ProfileRepo) *AvatarCleanupJob {
	return &AvatarCleanupJob{profileRepo: profileRepo}
}

func (s *AvatarCleanupJob) Run() {
	traceID := "job-avatar-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	log.InfoContext(ctx, "start avatar cleanup job")

	stored, err := minio.ListObjects(ctx, consts.AvatarPrefix)
	if err != nil {
		log.ErrorContext(ctx, "failed to list avatar objects", "err", err)
		return
	}

	referenced, err := s.profileRepo.ListAvatarKeys(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to list referenced avatars", "err", err)
		return
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		inUse[key] = struct{}{}
	}

	count := 0
	for _, key := range stored {
		if _, ok := inUse[key]; ok {
			continue
		}
		if err = minio.DeleteFile(ctx, key); err != nil {
			log.ErrorContext(ctx, "failed to delete orphan avatar", "key", key, "err", err)
			continue
		}
		count++
	}

	if count > 0 {
		log.InfoContext(ctx, "avatar cleanup job finished", "cleaned_count", count)
	}
}

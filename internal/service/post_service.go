package service

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/model"
	"Nexus/internal/pkg/util"
	"Nexus/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, authorUserID uint64, create *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id uint64) (*dto.PostDTO, error)
	ListPostsByProfile(ctx context.Context, profileID uint64, limit, offset int) ([]*dto.PostDTO, error)
	ListReplies(ctx context.Context, postID uint64, limit, offset int) ([]*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64) error
}

type PostServiceImpl struct {
	postRepo    repository.PostRepo
	profileRepo repository.ProfileRepo
}

func NewPostService(postRepo repository.PostRepo, profileRepo repository.ProfileRepo) PostService {
	return &PostServiceImpl{
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// CreatePost 发帖。转发可以没有正文，普通帖子与回复必须有正文
func (s *PostServiceImpl) CreatePost(ctx context.Context, authorUserID uint64, create *dto.CreatePostDTO) (*dto.PostDTO, error) {
	// 唯一的校验规则是正文长度上限
	if err := util.ValidateDTO(create); err != nil {
		return nil, ErrContentTooLong
	}

	author, err := s.profileRepo.GetProfileByUserID(ctx, authorUserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrProfileNotFound
	}

	if create.OriginalPostID == nil {
		if create.Content == nil || strings.TrimSpace(*create.Content) == "" {
			return nil, ErrContentRequired
		}
	}

	if create.ReplyToID != nil {
		if err = s.ensurePostExists(ctx, *create.ReplyToID); err != nil {
			return nil, err
		}
	}
	if create.OriginalPostID != nil {
		if err = s.ensurePostExists(ctx, *create.OriginalPostID); err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID:       author.ID,
		Content:        create.Content,
		ReplyToID:      create.ReplyToID,
		OriginalPostID: create.OriginalPostID,
		CreatedAt:      time.Now(),
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post), nil
}

func (s *PostServiceImpl) ListPostsByProfile(ctx context.Context, profileID uint64, limit, offset int) ([]*dto.PostDTO, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	posts, err := s.postRepo.ListPostsByAuthor(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

func (s *PostServiceImpl) ListReplies(ctx context.Context, postID uint64, limit, offset int) ([]*dto.PostDTO, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListReplies(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

// DeletePost 作者或管理员删除帖子。不存在与无权限对调用者不可区分
func (s *PostServiceImpl) DeletePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if !isAdmin {
		author, err := s.profileRepo.GetProfileByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if author == nil || author.ID != post.AuthorID {
			return ErrPostNotFound
		}
	}

	return s.postRepo.DeletePost(ctx, postID)
}

func (s *PostServiceImpl) ensurePostExists(ctx context.Context, id uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	res := &dto.PostDTO{}
	_ = copier.Copy(res, post)
	return res
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	res := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		res = append(res, toPostDTO(post))
	}
	return res
}

package repository

import (
	"Nexus/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id uint64) (*model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	ListReplies(ctx context.Context, postID uint64, limit, offset int) ([]*model.Post, error)
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).First(post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

// ListPostsByAuthor 获取作者的帖子列表，最新在前
func (s *PostRepoImpl) ListPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// ListReplies 获取帖子的回复列表，最新在前
func (s *PostRepoImpl) ListReplies(ctx context.Context, postID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("reply_to_id = ?", postID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// DeletePost 删除帖子并级联删除其回复与转发
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deletePostsCascade(tx, []uint64{id})
	})
}

// deletePostsCascade 逐层删除帖子及引用它们的回复与转发
func deletePostsCascade(tx *gorm.DB, ids []uint64) error {
	for len(ids) > 0 {
		children := make([]uint64, 0)
		if err := tx.Model(&model.Post{}).
			Where("reply_to_id IN ? OR original_post_id IN ?", ids, ids).
			Pluck("id", &children).Error; err != nil {
			return err
		}

		if err := tx.Where("id IN ?", ids).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		ids = children
	}
	return nil
}

package dto

import "time"

// CreatePostDTO 发帖。reply_to_id 表示回复，original_post_id 表示转发
type CreatePostDTO struct {
	Content        *string `json:"content,omitempty" validate:"omitempty,max=280"`
	ReplyToID      *uint64 `json:"reply_to_id,omitempty"`
	OriginalPostID *uint64 `json:"original_post_id,omitempty"`
}

// PostDTO 帖子响应
type PostDTO struct {
	ID             uint64    `json:"id"`
	AuthorID       uint64    `json:"author_id"`
	Content        *string   `json:"content,omitempty"`
	ReplyToID      *uint64   `json:"reply_to_id,omitempty"`
	OriginalPostID *uint64   `json:"original_post_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

package model

import "time"

type Post struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	AuthorID       uint64    `gorm:"not null;index:idx_author_id" json:"author_id"`
	Content        *string   `gorm:"type:varchar(280)" json:"content,omitempty"`
	ReplyToID      *uint64   `gorm:"index:idx_reply_to" json:"reply_to_id,omitempty"`
	OriginalPostID *uint64   `gorm:"index:idx_original_post" json:"original_post_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	Author Profile `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

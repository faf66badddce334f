package forum

import (
	"time"

	"gorm.io/gorm"
)

// ForumPost carries denormalized counters so list views never join or
// count. The counters move in the same transaction as the child rows.
type ForumPost struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	Author        string         `json:"author" gorm:"not null"`
	Title         string         `json:"title" gorm:"not null"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Category      string         `json:"category" gorm:"index;default:'general'"`
	Likes         int            `json:"likes" gorm:"default:0"`
	CommentsCount int            `json:"comments_count" gorm:"default:0"`
	Comments      []ForumComment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

// ForumComment belongs to a post; creating or deleting one adjusts the
// post's comments_count.
type ForumComment struct {
	gorm.Model
	PostID  uint   `json:"post_id" gorm:"not null;index"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Author  string `json:"author" gorm:"not null"`
	Content string `json:"content" gorm:"type:text;not null"`
}

// ForumLike records one user's like of one post. The unique index is
// what makes the like toggle idempotent per user. No soft delete here:
// an unliked row must vanish for real or the index blocks re-liking.
type ForumLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_forum_likes_post_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_forum_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=200"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=3,max=200"`
	Content  *string `json:"content" binding:"omitempty,min=1"`
	Category *string `json:"category" binding:"omitempty,max=50"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// LikeResponse reports the state after a like toggle.
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

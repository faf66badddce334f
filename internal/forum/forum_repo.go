package forum

import (
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/user"
)

// ForumRepository defines the interface for forum data operations
type ForumRepository interface {
	CreatePost(post *ForumPost) error
	GetPostByID(id uint) (*ForumPost, error)
	GetPostWithComments(id uint) (*ForumPost, error)
	GetAllPosts(page, limit int, category string) ([]ForumPost, int64, error)
	UpdatePost(post *ForumPost) error
	DeletePost(id uint) error

	CreateComment(comment *ForumComment) error
	GetCommentByID(id uint) (*ForumComment, error)
	GetCommentsByPostID(postID uint, page, limit int) ([]ForumComment, int64, error)
	DeleteComment(id uint) error

	GetLike(postID, userID uint) (*ForumLike, error)
	CreateLike(like *ForumLike) error
	DeleteLike(postID, userID uint) error

	AddToLikes(postID uint, delta int) error
	AddToCommentsCount(postID uint, delta int) error

	GetAuthorName(userID uint) (string, error)

	WithTransaction(txFunc func(ForumRepository) error) error
}

type forumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreatePost(post *ForumPost) error {
	return r.db.Create(post).Error
}

func (r *forumRepository) GetPostByID(id uint) (*ForumPost, error) {
	var post ForumPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *forumRepository) GetPostWithComments(id uint) (*ForumPost, error) {
	var post ForumPost
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("forum_comments.created_at ASC")
	}).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *forumRepository) GetAllPosts(page, limit int, category string) ([]ForumPost, int64, error) {
	var posts []ForumPost
	var total int64

	query := r.db.Model(&ForumPost{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *forumRepository) UpdatePost(post *ForumPost) error {
	return r.db.Save(post).Error
}

// DeletePost removes the post and its children. Comments go soft like
// the post; like rows are removed outright.
func (r *forumRepository) DeletePost(id uint) error {
	if err := r.db.Where("post_id = ?", id).Delete(&ForumComment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("post_id = ?", id).Delete(&ForumLike{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&ForumPost{}, id).Error
}

func (r *forumRepository) CreateComment(comment *ForumComment) error {
	return r.db.Create(comment).Error
}

func (r *forumRepository) GetCommentByID(id uint) (*ForumComment, error) {
	var comment ForumComment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *forumRepository) GetCommentsByPostID(postID uint, page, limit int) ([]ForumComment, int64, error) {
	var comments []ForumComment
	var total int64

	query := r.db.Model(&ForumComment{}).Where("post_id = ?", postID)
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at asc").Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *forumRepository) DeleteComment(id uint) error {
	return r.db.Delete(&ForumComment{}, id).Error
}

func (r *forumRepository) GetLike(postID, userID uint) (*ForumLike, error) {
	var like ForumLike
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *forumRepository) CreateLike(like *ForumLike) error {
	return r.db.Create(like).Error
}

func (r *forumRepository) DeleteLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&ForumLike{}).Error
}

func (r *forumRepository) AddToLikes(postID uint, delta int) error {
	return r.db.Model(&ForumPost{}).Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func (r *forumRepository) AddToCommentsCount(postID uint, delta int) error {
	return r.db.Model(&ForumPost{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

func (r *forumRepository) GetAuthorName(userID uint) (string, error) {
	var u user.User
	if err := r.db.Select("name").First(&u, userID).Error; err != nil {
		return "", err
	}
	return u.Name, nil
}

func (r *forumRepository) WithTransaction(txFunc func(ForumRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &forumRepository{db: tx}
		return txFunc(txRepo)
	})
}

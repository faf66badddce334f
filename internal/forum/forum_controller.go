package forum

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/middleware"
	"github.com/wpras/golfku/pkg/responses"
	"github.com/wpras/golfku/pkg/validator"
)

type ForumController struct {
	repo ForumRepository
}

func NewForumController(repo ForumRepository) *ForumController {
	return &ForumController{repo: repo}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid post ID")
		return 0, false
	}
	return uint(id), true
}

// CreatePost godoc
// @Summary Create a forum post
// @Description Publish a new post under the caller's name
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post content"
// @Success 201 {object} responses.SuccessResponse{data=ForumPost} "Created post"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /forum/posts [post]
func (fc *ForumController) CreatePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}

	author, err := fc.repo.GetAuthorName(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve author")
		return
	}

	post := &ForumPost{
		UserID:   userID,
		Author:   author,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if post.Category == "" {
		post.Category = "general"
	}
	if err := fc.repo.CreatePost(post); err != nil {
		responses.InternalServerError(c, "Failed to create post")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Post created successfully", post)
}

// GetPosts godoc
// @Summary List forum posts
// @Description Get posts newest first, optionally filtered by category
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param category query string false "Filter by category"
// @Success 200 {object} responses.PaginatedResponse{data=[]ForumPost} "Posts"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /forum/posts [get]
func (fc *ForumController) GetPosts(c *gin.Context) {
	page, limit := pageParams(c)

	posts, total, err := fc.repo.GetAllPosts(page, limit, c.Query("category"))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve posts")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Posts retrieved successfully", posts, total, page, limit)
}

// GetPost godoc
// @Summary Get a forum post
// @Description Get one post with its comments, oldest comment first
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Success 200 {object} responses.SuccessResponse{data=ForumPost} "Post with comments"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id} [get]
func (fc *ForumController) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostWithComments(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post retrieved successfully", post)
}

// UpdatePost godoc
// @Summary Update a forum post
// @Description Edit title, content or category of the caller's own post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param post body UpdatePostRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=ForumPost} "Updated post"
// @Failure 403 {object} responses.ErrorResponse "Not the author"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id} [put]
func (fc *ForumController) UpdatePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}
	if post.UserID != userID {
		responses.Forbidden(c, "You can only edit your own posts")
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if err := fc.repo.UpdatePost(post); err != nil {
		responses.InternalServerError(c, "Failed to update post")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post updated successfully", post)
}

// DeletePost godoc
// @Summary Delete a forum post
// @Description Delete the caller's own post along with its comments and likes
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Success 200 {object} responses.SuccessResponse "Deleted"
// @Failure 403 {object} responses.ErrorResponse "Not the author"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id} [delete]
func (fc *ForumController) DeletePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}
	if post.UserID != userID {
		responses.Forbidden(c, "You can only delete your own posts")
		return
	}

	err = fc.repo.WithTransaction(func(txRepo ForumRepository) error {
		return txRepo.DeletePost(postID)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to delete post")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post deleted successfully", nil)
}

// AddComment godoc
// @Summary Comment on a post
// @Description Add a comment and bump the post's comment counter in one transaction
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param comment body CreateCommentRequest true "Comment content"
// @Success 201 {object} responses.SuccessResponse{data=ForumComment} "Created comment"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id}/comments [post]
func (fc *ForumController) AddComment(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}

	if _, err := fc.repo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}

	author, err := fc.repo.GetAuthorName(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve author")
		return
	}

	comment := &ForumComment{
		PostID:  postID,
		UserID:  userID,
		Author:  author,
		Content: req.Content,
	}
	err = fc.repo.WithTransaction(func(txRepo ForumRepository) error {
		if err := txRepo.CreateComment(comment); err != nil {
			return err
		}
		return txRepo.AddToCommentsCount(postID, 1)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to create comment")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Comment added successfully", comment)
}

// GetComments godoc
// @Summary List comments
// @Description Get a post's comments, oldest first
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]ForumComment} "Comments"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id}/comments [get]
func (fc *ForumController) GetComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	if _, err := fc.repo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}

	comments, total, err := fc.repo.GetCommentsByPostID(postID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve comments")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Comments retrieved successfully", comments, total, page, limit)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Delete the caller's own comment and decrement the post's counter in one transaction
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} responses.SuccessResponse "Deleted"
// @Failure 403 {object} responses.ErrorResponse "Not the author"
// @Failure 404 {object} responses.ErrorResponse "Comment not found"
// @Router /forum/posts/{post_id}/comments/{comment_id} [delete]
func (fc *ForumController) DeleteComment(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid comment ID")
		return
	}

	comment, err := fc.repo.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Comment")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve comment")
		return
	}
	if comment.PostID != postID {
		responses.NotFound(c, "Comment")
		return
	}
	if comment.UserID != userID {
		responses.Forbidden(c, "You can only delete your own comments")
		return
	}

	err = fc.repo.WithTransaction(func(txRepo ForumRepository) error {
		if err := txRepo.DeleteComment(comment.ID); err != nil {
			return err
		}
		return txRepo.AddToCommentsCount(postID, -1)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to delete comment")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description Toggle the caller's like; the post counter moves with the row in one transaction
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Success 200 {object} responses.SuccessResponse{data=LikeResponse} "New like state"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /forum/posts/{post_id}/like [post]
func (fc *ForumController) ToggleLike(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if _, err := fc.repo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}

	var liked bool
	err = fc.repo.WithTransaction(func(txRepo ForumRepository) error {
		_, err := txRepo.GetLike(postID, userID)
		switch {
		case err == nil:
			if err := txRepo.DeleteLike(postID, userID); err != nil {
				return err
			}
			return txRepo.AddToLikes(postID, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			if err := txRepo.CreateLike(&ForumLike{PostID: postID, UserID: userID}); err != nil {
				return err
			}
			return txRepo.AddToLikes(postID, 1)
		default:
			return err
		}
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to toggle like")
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Like updated", LikeResponse{Liked: liked, Likes: post.Likes})
}

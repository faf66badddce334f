package forum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/user"
	"github.com/wpras/golfku/pkg/responses"
	"github.com/wpras/golfku/pkg/token"
)

const testSecret = "test-secret"

func setupForumTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&user.User{}, &ForumPost{}, &ForumComment{}, &ForumLike{}))

	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = testSecret

	r := gin.New()
	RegisterForumRoutes(r.Group("/api"), db, cfg)
	return r, db
}

func newForumUser(t *testing.T, db *gorm.DB, name, email string) (uint, string) {
	t.Helper()
	u := user.User{Name: name, Email: email, Password: "irrelevant", Verified: true}
	require.NoError(t, db.Create(&u).Error)
	tok, err := token.GenerateJWT(u.ID, testSecret, 60)
	require.NoError(t, err)
	return u.ID, tok
}

func doJSON(r http.Handler, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, r http.Handler, bearer, title, category string) ForumPost {
	t.Helper()
	w := doJSON(r, "POST", "/api/forum/posts", gin.H{
		"title":    title,
		"content":  "Some forum content about " + title,
		"category": category,
	}, bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data ForumPost `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestForumRequiresAuth(t *testing.T) {
	r, _ := setupForumTest(t)

	w := doJSON(r, "GET", "/api/forum/posts", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "POST", "/api/forum/posts", gin.H{"title": "Hello", "content": "x"}, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListPosts(t *testing.T) {
	r, db := setupForumTest(t)
	_, tok := newForumUser(t, db, "Agus", "agus@example.com")

	created := createPost(t, r, tok, "Best driver under 5 juta?", "equipment")
	assert.Equal(t, "Agus", created.Author)
	assert.Equal(t, "equipment", created.Category)
	assert.Zero(t, created.Likes)

	createPost(t, r, tok, "Weekend flight at Rancamaya", "")

	w := doJSON(r, "GET", "/api/forum/posts", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Status     string               `json:"status"`
		Data       []ForumPost          `json:"data"`
		Pagination responses.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "success", list.Status)
	require.Len(t, list.Data, 2)
	assert.EqualValues(t, 2, list.Pagination.TotalItems)
	// Newest first; the empty category landed on the default.
	assert.Equal(t, "Weekend flight at Rancamaya", list.Data[0].Title)
	assert.Equal(t, "general", list.Data[0].Category)

	w = doJSON(r, "GET", "/api/forum/posts?category=equipment", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Best driver under 5 juta?", list.Data[0].Title)
}

func TestCreatePostValidation(t *testing.T) {
	r, db := setupForumTest(t)
	_, tok := newForumUser(t, db, "Agus", "agus@example.com")

	w := doJSON(r, "POST", "/api/forum/posts", gin.H{"content": "no title"}, tok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title")
}

func TestPostOwnership(t *testing.T) {
	r, db := setupForumTest(t)
	_, agusTok := newForumUser(t, db, "Agus", "agus@example.com")
	_, budiTok := newForumUser(t, db, "Budi", "budi@example.com")

	post := createPost(t, r, agusTok, "Course conditions at Halim", "courses")
	path := fmt.Sprintf("/api/forum/posts/%d", post.ID)

	w := doJSON(r, "PUT", path, gin.H{"title": "Hijacked title"}, budiTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, "DELETE", path, nil, budiTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, "PUT", path, gin.H{"title": "Halim fairways after the rain"}, agusTok)
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Data ForumPost `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Halim fairways after the rain", updated.Data.Title)
	assert.Equal(t, "courses", updated.Data.Category)

	w = doJSON(r, "DELETE", path, nil, agusTok)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", path, nil, agusTok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentsMoveCounter(t *testing.T) {
	r, db := setupForumTest(t)
	_, agusTok := newForumUser(t, db, "Agus", "agus@example.com")
	budiID, budiTok := newForumUser(t, db, "Budi", "budi@example.com")

	post := createPost(t, r, agusTok, "Anyone played Gunung Geulis lately?", "")

	w := doJSON(r, "POST", fmt.Sprintf("/api/forum/posts/%d/comments", post.ID), gin.H{
		"content": "Played it last week, greens are quick.",
	}, budiTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data ForumComment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Budi", created.Data.Author)
	assert.Equal(t, budiID, created.Data.UserID)

	var reloaded ForumPost
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 1, reloaded.CommentsCount)

	// Only the comment's author may remove it.
	commentPath := fmt.Sprintf("/api/forum/posts/%d/comments/%d", post.ID, created.Data.ID)
	w = doJSON(r, "DELETE", commentPath, nil, agusTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, "DELETE", commentPath, nil, budiTok)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 0, reloaded.CommentsCount)
}

func TestCommentOnMissingPost(t *testing.T) {
	r, db := setupForumTest(t)
	_, tok := newForumUser(t, db, "Agus", "agus@example.com")

	w := doJSON(r, "POST", "/api/forum/posts/9999/comments", gin.H{"content": "hello"}, tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeToggle(t *testing.T) {
	r, db := setupForumTest(t)
	_, agusTok := newForumUser(t, db, "Agus", "agus@example.com")
	_, budiTok := newForumUser(t, db, "Budi", "budi@example.com")

	post := createPost(t, r, agusTok, "Hole in one at Riverside!", "")
	likePath := fmt.Sprintf("/api/forum/posts/%d/like", post.ID)

	var resp struct {
		Data LikeResponse `json:"data"`
	}

	w := doJSON(r, "POST", likePath, nil, budiTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Liked)
	assert.Equal(t, 1, resp.Data.Likes)

	// Two users like independently.
	w = doJSON(r, "POST", likePath, nil, agusTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Likes)

	var likeRows int64
	db.Model(&ForumLike{}).Where("post_id = ?", post.ID).Count(&likeRows)
	assert.EqualValues(t, 2, likeRows)

	// Second toggle from the same user takes the like back.
	w = doJSON(r, "POST", likePath, nil, budiTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Liked)
	assert.Equal(t, 1, resp.Data.Likes)

	db.Model(&ForumLike{}).Where("post_id = ?", post.ID).Count(&likeRows)
	assert.EqualValues(t, 1, likeRows)

	// Re-liking works; the unique index only guards live rows.
	w = doJSON(r, "POST", likePath, nil, budiTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Liked)
	assert.Equal(t, 2, resp.Data.Likes)
}

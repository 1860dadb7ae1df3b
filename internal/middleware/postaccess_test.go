package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPostRepo struct {
	repository.PostRepository
	posts map[int64]*models.Post
}

func (s stubPostRepo) GetPostByID(id int64) (*models.Post, error) {
	return s.posts[id], nil
}

func TestPostAccess(t *testing.T) {
	tokens := service.NewTokenManager("test-secret", time.Minute)
	users := stubUserRepo{byUsername: map[string]*models.User{
		"alice": makeUser(1, "alice", "author"),
		"bob":   makeUser(2, "bob", "author"),
		"root":  makeUser(3, "root", "admin"),
		"carol": makeUser(4, "carol", "user"),
	}}
	posts := stubPostRepo{posts: map[int64]*models.Post{
		10: {ID: 10, Title: "alice's post", AuthorID: 1},
	}}

	router := gin.New()
	router.PUT("/posts/:id",
		Authenticate(tokens, users, zap.NewNop()),
		PostAccess(posts, zap.NewNop()),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"title": TargetPost(c).Title})
		},
	)

	put := func(username, path string) *httptest.ResponseRecorder {
		tokenString, _, err := tokens.Issue(username)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, path, nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("nonexistent post is 404 before authorization", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, put("carol", "/posts/999").Code)
	})

	t.Run("invalid id is 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, put("alice", "/posts/abc").Code)
	})

	t.Run("owning author is allowed", func(t *testing.T) {
		w := put("alice", "/posts/10")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice's post")
	})

	t.Run("other author is denied", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, put("bob", "/posts/10").Code)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, put("root", "/posts/10").Code)
	})

	t.Run("plain user role is denied", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, put("carol", "/posts/10").Code)
	})
}

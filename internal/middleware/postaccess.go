package middleware

import (
	"net/http"
	"strconv"

	"blogapi/internal/models"
	"blogapi/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const postContextKey = "targetPost"

// CanModifyPost decides post mutation: admins may modify any post, authors
// only their own. Admin bypass is checked before ownership so a reassigned
// role keeps working as expected.
func CanModifyPost(user *models.User, post *models.Post) bool {
	if user == nil || post == nil {
		return false
	}
	if user.HasRole("admin") {
		return true
	}
	return user.HasRole("author") && post.AuthorID == user.ID
}

// PostAccess guards post mutation routes. Existence is checked before
// authorization: a missing post is 404 even for users who could not have
// touched it. The loaded post is stored in the context for the handler.
// Must run after Authenticate.
func PostAccess(posts repository.PostRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
			return
		}

		post, err := posts.GetPostByID(id)
		if err != nil {
			logger.Error("Failed to load post", zap.Int64("id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve post"})
			return
		}
		if post == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		if !CanModifyPost(CurrentUser(c), post) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this post"})
			return
		}

		c.Set(postContextKey, post)
		c.Next()
	}
}

// TargetPost returns the post loaded by PostAccess.
func TargetPost(c *gin.Context) *models.Post {
	value, exists := c.Get(postContextKey)
	if !exists {
		return nil
	}
	post, ok := value.(*models.Post)
	if !ok {
		return nil
	}
	return post
}

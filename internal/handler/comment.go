package handler

import (
	"net/http"
	"strconv"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
}

type commentHandler struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	logger   *zap.Logger
}

func NewCommentHandler(comments repository.CommentRepository, posts repository.PostRepository, logger *zap.Logger) CommentHandler {
	return &commentHandler{comments: comments, posts: posts, logger: logger}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create handles POST /posts/:id/comments. Requires the "author" or "admin"
// role; 404 when the post does not exist.
func (h *commentHandler) Create(c *gin.Context) {
	idStr := c.Param("id")
	postID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.GetPostByID(postID)
	if err != nil {
		h.logger.Error("Failed to get post", zap.Int64("id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	author := middleware.CurrentUser(c)
	comment := &models.Comment{
		Content:  req.Content,
		PostID:   post.ID,
		AuthorID: &author.ID,
		Author:   author,
	}
	if err := h.comments.CreateComment(comment); err != nil {
		h.logger.Error("Failed to create comment", zap.Int64("post_id", post.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List handles GET /posts/:id/comments. Public, oldest first.
func (h *commentHandler) List(c *gin.Context) {
	idStr := c.Param("id")
	postID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	comments, err := h.comments.ListCommentsForPost(postID)
	if err != nil {
		h.logger.Error("Failed to list comments", zap.Int64("post_id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

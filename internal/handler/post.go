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

const defaultPostPageSize = 100

type PostHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type postHandler struct {
	posts  repository.PostRepository
	logger *zap.Logger
}

func NewPostHandler(posts repository.PostRepository, logger *zap.Logger) PostHandler {
	return &postHandler{posts: posts, logger: logger}
}

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Create handles POST /posts. Requires the "author" or "admin" role; the
// authenticated user becomes the post's author.
func (h *postHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := middleware.CurrentUser(c)
	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: author.ID,
		Author:   author,
	}
	if err := h.posts.CreatePost(post); err != nil {
		h.logger.Error("Failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List handles GET /posts. Public, newest first, skip/limit pagination.
func (h *postHandler) List(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPostPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPostPageSize
	}

	posts, err := h.posts.ListPosts(skip, limit)
	if err != nil {
		h.logger.Error("Failed to list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Get handles GET /posts/:id. Public.
func (h *postHandler) Get(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	post, err := h.posts.GetPostByID(id)
	if err != nil {
		h.logger.Error("Failed to get post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts/:id. The ownership gate has already loaded the
// post and authorized the caller.
func (h *postHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := middleware.TargetPost(c)
	post.Title = req.Title
	post.Content = req.Content
	if err := h.posts.UpdatePost(post); err != nil {
		h.logger.Error("Failed to update post", zap.Int64("id", post.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id. The ownership gate has already loaded
// the post and authorized the caller. Comments go with the post.
func (h *postHandler) Delete(c *gin.Context) {
	post := middleware.TargetPost(c)
	if err := h.posts.DeletePost(post.ID); err != nil {
		h.logger.Error("Failed to delete post", zap.Int64("id", post.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler interface {
	Register(c *gin.Context)
	Me(c *gin.Context)
	List(c *gin.Context)
	AssignRole(c *gin.Context)
	Delete(c *gin.Context)
}

type userHandler struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	authService service.AuthService
	logger      *zap.Logger
}

func NewUserHandler(users repository.UserRepository, roles repository.RoleRepository, authService service.AuthService, logger *zap.Logger) UserHandler {
	return &userHandler{users: users, roles: roles, authService: authService, logger: logger}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /users. New users start with the "user" role.
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already registered"})
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me handles GET /users/me.
func (h *userHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// List handles GET /users. Admin only.
func (h *userHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// AssignRole handles POST /users/:id/roles/:role. Admin only. An unknown
// role name clears the user's role.
func (h *userHandler) AssignRole(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	roleName := c.Param("role")
	role, err := h.roles.GetRoleByName(roleName)
	if err != nil {
		h.logger.Error("Failed to get role", zap.String("role", roleName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve role"})
		return
	}

	var roleID *int64
	if role != nil {
		roleID = &role.ID
	}
	if err := h.users.AssignRole(user.ID, roleID); err != nil {
		h.logger.Error("Failed to assign role", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role " + roleName + " assigned to " + user.Username})
}

// Delete handles DELETE /users/:id. Admin only. The user's posts and
// comments are deleted with them.
func (h *userHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.users.DeleteUser(user.ID); err != nil {
		h.logger.Error("Failed to delete user", zap.Int64("id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

package server

import (
	"net/http"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Repositories bundles the persistence layer handed to the server. Tests
// substitute in-memory implementations here.
type Repositories struct {
	Users    repository.UserRepository
	Roles    repository.RoleRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
}

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	repos := Repositories{
		Users:    repository.NewUserRepository(db, logger),
		Roles:    repository.NewRoleRepository(db, logger),
		Posts:    repository.NewPostRepository(db, logger),
		Comments: repository.NewCommentRepository(db, logger),
	}
	return NewServerWithRepositories(repos, cfg, logger)
}

func NewServerWithRepositories(repos Repositories, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes(repos)

	return s
}

func (s *Server) setupRoutes(repos Repositories) {
	tokens := service.NewTokenManager(s.cfg.Auth.JWTSecret, time.Duration(s.cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := service.NewAuthService(repos.Users, repos.Roles, tokens, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(repos.Users, repos.Roles, authService, s.logger)
	postHandler := handler.NewPostHandler(repos.Posts, s.logger)
	commentHandler := handler.NewCommentHandler(repos.Comments, repos.Posts, s.logger)

	authenticated := middleware.Authenticate(tokens, repos.Users, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	s.router.POST("/auth/token", authHandler.Token)

	userGroup := s.router.Group("/users")
	{
		userGroup.POST("", userHandler.Register)
		userGroup.GET("/me", authenticated, userHandler.Me)
		userGroup.GET("", authenticated, middleware.RequireRole("admin"), userHandler.List)
		userGroup.POST("/:id/roles/:role", authenticated, middleware.RequireRole("admin"), userHandler.AssignRole)
		userGroup.DELETE("/:id", authenticated, middleware.RequireRole("admin"), userHandler.Delete)
	}

	postGroup := s.router.Group("/posts")
	{
		postGroup.GET("", postHandler.List)
		postGroup.GET("/:id", postHandler.Get)
		postGroup.POST("", authenticated, middleware.RequireRole("author", "admin"), postHandler.Create)

		postGate := middleware.PostAccess(repos.Posts, s.logger)
		postGroup.PUT("/:id", authenticated, postGate, postHandler.Update)
		postGroup.DELETE("/:id", authenticated, postGate, postHandler.Delete)

		postGroup.GET("/:id/comments", commentHandler.List)
		postGroup.POST("/:id/comments", authenticated, middleware.RequireRole("author", "admin"), commentHandler.Create)
	}
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}

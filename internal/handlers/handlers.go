package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/database"
	"github.com/akukesepian/backend/internal/middleware"
	"github.com/akukesepian/backend/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	authService  *service.AuthService
	chatService  *service.ChatService
	adminService *service.AdminService
	users        middleware.UserLoader
	db           *database.Client
	cache        *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	auth *service.AuthService,
	chat *service.ChatService,
	admin *service.AdminService,
	users middleware.UserLoader,
	db *database.Client,
	cache *redis.Client,
) HandlerSet {
	return HandlerSet{
		log:          log,
		cfg:          cfg,
		authService:  auth,
		chatService:  chat,
		adminService: admin,
		users:        users,
		db:           db,
		cache:        cache,
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.GET("/", h.Health)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.POST("/verify-email", h.VerifyEmail)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)

	authed := auth.Group("")
	authed.Use(middleware.Auth(h.cfg.Security, h.users))
	authed.GET("/me", h.Me)
	authed.PUT("/profile", h.UpdateProfile)
	authed.POST("/avatar", h.UploadAvatar)

	chat := api.Group("/chat")
	chat.Use(middleware.Auth(h.cfg.Security, h.users))
	chat.GET("/characters", h.ListCharacters)
	chat.GET("/sessions", h.ListSessions)
	chat.POST("/sessions", h.CreateSession)
	chat.GET("/sessions/:id/messages", h.SessionMessages)
	chat.POST("/sessions/:id/messages", h.SendMessage)
	chat.DELETE("/sessions/:id", h.DeleteSession)

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(h.cfg.Security, h.users))
	admin.GET("/check", h.AdminCheck)

	guarded := admin.Group("")
	guarded.Use(middleware.RequireAdmin())
	guarded.GET("/users", h.AdminListUsers)
	guarded.DELETE("/users/:id", h.AdminDeleteUser)
	guarded.PUT("/users/:id/toggle-admin", h.AdminToggleAdmin)
	guarded.GET("/sessions", h.AdminListSessions)
	guarded.GET("/sessions/:id/messages", h.AdminSessionMessages)
	guarded.POST("/sessions/:id/takeover", h.AdminTakeover)
	guarded.DELETE("/sessions/:id", h.AdminDeleteSession)
	guarded.GET("/stats", h.AdminStats)
}

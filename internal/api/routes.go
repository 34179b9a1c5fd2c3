package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resuminator/internal/api/middleware"
	"resuminator/internal/auth"
	"resuminator/internal/config"
	"resuminator/internal/section"
)

// RegisterRoutes registers the /api surface: auth, the per-section CRUD
// routes, the aggregate export and the generation proxy.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	authService *auth.AuthService,
	redisClient redis.UniversalClient,
	generator Generator,
	logger *slog.Logger,
	cfg *config.Config,
) {
	authHandler := NewAuthHandler(
		db,
		authService,
		redisClient,
		logger,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		cfg.Auth.LoginLockTTL(),
		cfg.Auth.CookieDomain,
	)
	exportHandler := NewExportHandler(db)
	generateHandler := NewGenerateHandler(generator, cfg.Gemini.Timeout())
	authMiddleware := middleware.AuthMiddleware(authService)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/register", authHandler.Register)
		apiGroup.POST("/login", authHandler.Login)
		apiGroup.POST("/logout", authHandler.Logout)
		apiGroup.GET("/profile", authHandler.Profile)
		apiGroup.POST("/generate-resume", generateHandler.Generate)

		secured := apiGroup.Group("")
		secured.Use(authMiddleware)
		{
			secured.POST("/resume", exportHandler.Export)

			for _, kind := range section.Kinds {
				handler := NewSectionHandler(db, kind)
				secured.POST("/"+kind.Name, handler.Create)
				secured.GET("/"+kind.Name, handler.Get)
				secured.PUT("/"+kind.Name, handler.Update)
				secured.DELETE("/"+kind.Name, handler.Delete)
				if kind.HasEntries() {
					secured.DELETE("/"+kind.Name+"/:id", handler.DeleteEntry)
				}
			}
		}
	}
}

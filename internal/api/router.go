package api

import (
	"net/http"
	"time"

	"github.com/cms-admin-api/internal/config"
	"github.com/cms-admin-api/internal/ratelimit"
	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, limiter *ratelimit.Limiter, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(sessionMiddleware(services.Auth))

	// Handlers
	authHandler := NewAuthHandler(services, cfg, log)
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	userHandler := NewUserHandler(services, log)
	auditHandler := NewAuditHandler(services, log)
	mediaHandler := NewMediaHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	v1.Use(rateLimitMiddleware(limiter, "api", ratelimit.APILimit))
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", rateLimitMiddleware(limiter, "login", ratelimit.LoginLimit), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth(), authHandler.Me)
			auth.POST("/password", requireAuth(), authHandler.ChangePassword)
		}

		// Public surface: published articles and approved comments
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListPublished)
			articles.GET("/:slug", articleHandler.GetBySlug)
			articles.GET("/:slug/comments", commentHandler.ListForArticle)
			articles.POST("/:slug/comments", commentHandler.Submit)
		}

		// Admin surface
		admin := v1.Group("/admin", requireAuth())
		{
			adminArticles := admin.Group("/articles")
			{
				adminArticles.GET("", articleHandler.ListAll)
				adminArticles.POST("", rateLimitMiddleware(limiter, "article_create", ratelimit.ArticleCreateLimit), articleHandler.Create)
				adminArticles.GET("/:id", articleHandler.Get)
				adminArticles.PUT("/:id", articleHandler.Update)
				adminArticles.DELETE("/:id", articleHandler.Delete)

				adminArticles.GET("/:id/versions", articleHandler.ListVersions)
				adminArticles.POST("/:id/versions/:versionId/restore", articleHandler.RestoreVersion)
				adminArticles.DELETE("/:id/versions/:versionId", articleHandler.DeleteVersion)
			}

			comments := admin.Group("/comments")
			{
				comments.GET("", commentHandler.List)
				comments.POST("/:id/approve", commentHandler.Approve)
				comments.POST("/:id/unapprove", commentHandler.Unapprove)
				comments.DELETE("/:id", commentHandler.Delete)
				comments.POST("/bulk/approve", commentHandler.BulkApprove)
				comments.POST("/bulk/delete", commentHandler.BulkDelete)
			}

			users := admin.Group("/users")
			{
				users.GET("", userHandler.List)
				users.POST("", userHandler.Create)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Delete)
			}

			audit := admin.Group("/audit")
			{
				audit.GET("", auditHandler.List)
				audit.GET("/stats", auditHandler.Stats)
			}

			media := admin.Group("/media")
			{
				media.GET("", mediaHandler.List)
				media.POST("", rateLimitMiddleware(limiter, "upload", ratelimit.UploadLimit), mediaHandler.Upload)
				media.DELETE("/:id", mediaHandler.Delete)
			}
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "cms-admin-api",
	})
}

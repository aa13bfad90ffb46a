package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bridge/docs"
	"bridge/internal/auth"
	"bridge/internal/handler"
	"bridge/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Workspace *handler.WorkspaceHandler
	Highlight *handler.HighlightHandler
	Chat      *handler.ChatHandler
	Language  *handler.LanguageHandler
	Export    *handler.ExportHandler
	Health    *handler.HealthHandler
}

// Options configures cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	Limiter        *middleware.RateLimiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(tokens *auth.Tokens, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	throttle := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		throttle = opts.Limiter.Middleware()
	}

	v1 := r.Group("/api/v1")

	// Public routes
	v1.GET("/languages", h.Language.List)
	v1.GET("/preferences/language", h.Language.GetPreference)
	v1.PUT("/preferences/language", h.Language.SetPreference)
	v1.POST("/workspaces", throttle, h.Workspace.Create)

	// Workspace routes - require the token issued for :id
	ws := v1.Group("/workspaces/:id")
	ws.Use(middleware.WorkspaceAuth(tokens))

	ws.GET("", h.Workspace.Get)
	ws.DELETE("", h.Workspace.Delete)
	ws.POST("/document", throttle, h.Workspace.Process)
	ws.GET("/document/original", h.Workspace.Original)
	ws.POST("/reset", h.Workspace.Reset)

	// Highlight cross-references
	ws.GET("/highlights", h.Highlight.List)
	ws.GET("/translation", h.Highlight.Translation)
	ws.POST("/actions/leave", h.Highlight.Leave)
	ws.POST("/actions/:index/hover", h.Highlight.Hover)
	ws.POST("/actions/:index/toggle", h.Highlight.Toggle)

	// Chat
	ws.GET("/chat", h.Chat.Get)
	ws.POST("/chat", throttle, h.Chat.Send)
	ws.PUT("/chat/language", h.Chat.SetLanguage)
	ws.GET("/chat/prompts", h.Chat.Prompts)
	ws.GET("/chat/ws", throttle, h.Chat.Stream)

	// Export
	ws.GET("/summary/export", h.Export.Summary)

	return r
}

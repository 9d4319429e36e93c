package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/transcript-iq/pkg/config"
)

// healthTimeout bounds each dependency check
const healthTimeout = 3 * time.Second

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	aiController   *AIController
	projectHandler *Project
	webhookHandler *WebhookHandler
	authMW         echo.MiddlewareFunc
	functionAuthMW echo.MiddlewareFunc
	checks         map[string]HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	aiController *AIController,
	projectHandler *Project,
	webhookHandler *WebhookHandler,
	authMW echo.MiddlewareFunc,
	functionAuthMW echo.MiddlewareFunc,
	checks map[string]HealthCheck,
) *Router {
	return &Router{
		cfg:            cfg,
		aiController:   aiController,
		projectHandler: projectHandler,
		webhookHandler: webhookHandler,
		authMW:         authMW,
		functionAuthMW: functionAuthMW,
		checks:         checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupFunctionRoutes(v1)
	rt.setupProjectRoutes(v1)
}

// setupFunctionRoutes configures the transcript function endpoints
func (rt *Router) setupFunctionRoutes(g *echo.Group) {
	fn := g.Group("/functions")

	// the auth email hook is called by the identity provider and carries no bearer token
	var mws []echo.MiddlewareFunc
	if rt.functionAuthMW != nil {
		mws = append(mws, rt.functionAuthMW)
	}

	if rt.aiController != nil {
		fn.POST("/analyze-transcripts", rt.aiController.AnalyzeTranscripts, mws...)
		fn.POST("/chat-with-transcripts", rt.aiController.ChatWithTranscripts, mws...)
		fn.POST("/cleanup-quote", rt.aiController.CleanupQuote, mws...)
	} else {
		fn.POST("/analyze-transcripts", rt.notImplemented)
		fn.POST("/chat-with-transcripts", rt.notImplemented)
		fn.POST("/cleanup-quote", rt.notImplemented)
	}

	if rt.webhookHandler != nil {
		fn.POST("/send-auth-email", rt.webhookHandler.SendAuthEmail)
	} else {
		fn.POST("/send-auth-email", rt.notImplemented)
	}
}

// setupProjectRoutes configures project management routes
func (rt *Router) setupProjectRoutes(g *echo.Group) {
	var mws []echo.MiddlewareFunc
	if rt.authMW != nil {
		mws = append(mws, rt.authMW)
	}
	projects := g.Group("/projects", mws...)

	h := rt.projectHandler
	if h == nil {
		projects.Any("", rt.notImplemented)
		projects.Any("/*", rt.notImplemented)
		return
	}

	projects.GET("", h.ListProjects)
	projects.POST("", h.CreateProject)
	projects.GET("/:id", h.GetProject)
	projects.PUT("/:id", h.UpdateProject)
	projects.DELETE("/:id", h.DeleteProject)

	projects.GET("/:id/transcripts", h.ListTranscripts)
	projects.POST("/:id/transcripts", h.AddTranscript)
	projects.POST("/:id/transcripts/audio", h.ImportAudio)
	projects.DELETE("/:id/transcripts/:transcriptId", h.DeleteTranscript)

	projects.GET("/:id/context", h.GetContext)
	projects.POST("/:id/context", h.AppendContext)
	projects.PUT("/:id/context", h.ReplaceContext)
	projects.DELETE("/:id/context", h.ClearContext)

	projects.POST("/:id/analysis", h.RunAnalysis)
	projects.GET("/:id/analysis", h.LatestAnalysis)

	projects.GET("/:id/conversations", h.ListConversations)
	projects.DELETE("/:id/conversations", h.ClearConversations)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status of the service and its dependencies
func (rt *Router) healthCheck(c echo.Context) error {
	status := http.StatusOK
	deps := make(map[string]string, len(rt.checks))

	for name, check := range rt.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}

	return c.JSON(status, map[string]interface{}{
		"status":       state,
		"environment":  environment,
		"dependencies": deps,
	})
}

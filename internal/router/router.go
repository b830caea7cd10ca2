package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/oureon/trackr/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Task     *apiHandler.TaskHandler
	Focus    *apiHandler.FocusHandler
	Summary  *apiHandler.SummaryHandler
	Insights *apiHandler.InsightsHandler
	Timeline *apiHandler.TimelineHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.PATCH("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.POST("/api/v1/focus/start", authMiddleware(handlers.Focus.StartSession))
	r.POST("/api/v1/focus/{id}/end", authMiddleware(handlers.Focus.EndSession))
	r.GET("/api/v1/focus/active", authMiddleware(handlers.Focus.GetActiveSession))
	r.GET("/api/v1/focus", authMiddleware(handlers.Focus.GetSessions))

	r.GET("/api/v1/summary/daily", authMiddleware(handlers.Summary.Daily))
	r.GET("/api/v1/summary/weekly", authMiddleware(handlers.Summary.Weekly))
	r.GET("/api/v1/insights/weekly", authMiddleware(handlers.Insights.Weekly))
	r.GET("/api/v1/timeline", authMiddleware(handlers.Timeline.List))

	return r
}

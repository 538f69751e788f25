package router

import (
	"net/http"

	"demo-app-api/internal/handlers"
)

// Route paths
const (
	UsersPath      = "/lambda/users"
	UserPathPrefix = "/lambda/users/"
	ProcessPath    = "/lambda/process"
	AnalyticsPath  = "/lambda/analytics"
)

// RouterConfig holds the handlers the routes dispatch to
type RouterConfig struct {
	UserHandler       *handlers.UserHandler
	ProcessingHandler *handlers.ProcessingHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
}

// SetupRoutes registers the API routes on r
func SetupRoutes(r *Router, config *RouterConfig) {
	r.Handle(http.MethodGet, UsersPath, config.UserHandler.HandleList)
	r.Handle(http.MethodPost, UsersPath, config.UserHandler.HandleCreate)
	r.HandlePrefix(http.MethodGet, UserPathPrefix, "id", config.UserHandler.HandleGet)
	r.Handle(http.MethodPost, ProcessPath, config.ProcessingHandler.HandleProcess)
	r.Handle(http.MethodGet, AnalyticsPath, config.AnalyticsHandler.HandleAnalytics)
}

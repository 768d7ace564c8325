// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"innkeeper/config"
	"innkeeper/internal/delivery/http/middleware"
	"innkeeper/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AccountHandler *handler.AccountHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	accountHandler *handler.AccountHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		accountHandler: params.AccountHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/register", r.accountHandler.Register)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/logout", r.accountHandler.Logout)
		authGroup.GET("/validate-token", r.accountHandler.ValidateToken, r.authMiddleware.Authenticate)
	}

	if r.cfg.TestRoutes != nil && r.cfg.TestRoutes.Enabled {
		api.GET("/test", r.testHandler.Hello)
		api.GET("/test/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}

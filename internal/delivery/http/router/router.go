// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"quizdeck/internal/delivery/http/middleware"
	"quizdeck/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	QuestionHandler     *handler.QuestionHandler
	AuthMiddleware      *middleware.AuthMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	questionHandler     *handler.QuestionHandler
	authMiddleware      *middleware.AuthMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		questionHandler:     params.QuestionHandler,
		authMiddleware:      params.AuthMiddleware,
		loggerMiddleware:    params.LoggerMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Handle)
	e.Use(r.loggerMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes
	e.POST("/register", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)
	e.POST("/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)
	e.POST("/refresh-token", r.userHandler.Refresh)
	e.GET("/current-user", r.userHandler.CurrentUser, r.authMiddleware.Authenticate)

	// Password reset routes
	e.POST("/forgot-password", r.userHandler.ForgotPassword)
	e.POST("/reset-password/:id/:token", r.userHandler.ResetPassword)

	// Quiz question routes
	e.POST("/create-question", r.questionHandler.CreateQuestion)
	e.GET("/get-question", r.questionHandler.GetQuestions)
}

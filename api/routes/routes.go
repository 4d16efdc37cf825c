package routes

import (
	"time"

	"lawconnect/api/handler"
	"lawconnect/api/middleware"
	"lawconnect/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Questions      *handler.QuestionHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	questionHandler *handler.QuestionHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Questions:      questionHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.RegisterCustomer, r.AuthRate.Middleware())
	e.POST("/auth/register-lawyer", r.Auth.RegisterLawyer, r.AuthRate.Middleware())
	e.GET("/auth/verify-email/:token", r.Auth.VerifyEmail, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/logout-all", r.Auth.LogoutAll, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/password/forgot", r.Auth.PasswordForgot, r.LoginRate.Middleware())
	e.POST("/auth/password/reset", r.Auth.PasswordReset, r.AuthRate.Middleware())

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)
	e.PUT("/settings/customer", r.Auth.UpdateCustomerSettings,
		r.AuthMiddleware.RequireAuth, middleware.RequireKind(entity.AccountKindCustomer))
	e.PUT("/settings/lawyer", r.Auth.UpdateLawyerSettings,
		r.AuthMiddleware.RequireAuth, middleware.RequireKind(entity.AccountKindLawyer))

	e.GET("/home", r.Questions.Home)
	e.GET("/lawyers", r.Questions.Lawyers)
	e.GET("/questions", r.Questions.List, r.AuthMiddleware.OptionalAuth)
	e.POST("/questions", r.Questions.Ask,
		r.AuthMiddleware.RequireAuth, middleware.RequireKind(entity.AccountKindCustomer))
	e.POST("/questions/:id/answer", r.Questions.Answer,
		r.AuthMiddleware.RequireAuth, middleware.RequireKind(entity.AccountKindLawyer))
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/myhr/portal-gateway/internal/api/handler"
	"github.com/myhr/portal-gateway/internal/api/middleware"
	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/service"
	"github.com/myhr/portal-gateway/internal/hrapi"
	"github.com/myhr/portal-gateway/internal/infrastructure/config"
	redisdb "github.com/myhr/portal-gateway/internal/infrastructure/db/redis"
	gwsession "github.com/myhr/portal-gateway/internal/infrastructure/session"
)

// adminResources and employeeResources mirror the upstream HR API route
// groups one to one; each gets list and detail routes.
var adminResources = []string{
	"departments",
	"users",
	"employee-profiles",
	"payroll",
	"leave-requests",
	"attendance",
	"self-assessments",
	"meeting-slots",
}

var employeeResources = []string{
	"leave-requests",
	"payslips",
	"self-assessments",
	"meeting-slots",
	"my-booked-slots",
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hrportal"))

	// --- Dependencies ---
	store := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	client := hrapi.New(cfg.HRAPI.BaseURL, cfg.HRAPI.Timeout, log)
	authService := service.NewAuthService(client, store, log)
	codec := &gwsession.CookieCodec{
		Secret:       []byte(cfg.Session.Secret),
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		Lifetime:     cfg.Session.TTL,
	}

	sessionMW := middleware.Session(codec, store, authService, log)
	csrfMW := middleware.CSRF()

	authHandler := handler.NewAuthHandler(authService, client, codec, cfg.Session.CookieSecure)
	proxyHandler := handler.NewProxyHandler(client, log)
	dashboards := handler.NewDashboardHandler()

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(rdb, cfg.HRAPI.BaseURL).Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth surface ---
	e.GET("/api/csrf/", authHandler.CSRF)
	e.GET("/api/user/me/", authHandler.Me, sessionMW)
	e.POST("/api/login/", authHandler.Login, sessionMW, csrfMW)
	e.POST("/api/logout/", authHandler.Logout, sessionMW, csrfMW)
	e.POST("/api/register/", authHandler.Register, sessionMW, csrfMW)

	// --- Landing routes ---
	e.GET("/", dashboards.Home, sessionMW)
	e.GET("/login", dashboards.Login, sessionMW)
	e.GET("/admin-dashboard", dashboards.Admin, sessionMW, middleware.Guard(domain.RoleAdmin))
	e.GET("/employee-dashboard", dashboards.Employee, sessionMW, middleware.Guard(domain.RoleEmployee))

	// --- Admin resource routes ---
	admin := e.Group("/api/admin", sessionMW, csrfMW, middleware.Guard(domain.RoleAdmin))
	admin.Any("/users/pending-approval/", proxyHandler.Forward)
	admin.Any("/employee-profiles/by-username/:username/", proxyHandler.Forward)
	for _, res := range adminResources {
		admin.Any("/"+res+"/", proxyHandler.Forward)
		admin.Any("/"+res+"/:id/", proxyHandler.Forward)
	}

	// --- Employee resource routes ---
	employee := e.Group("/api/employee", sessionMW, csrfMW, middleware.Guard(domain.RoleEmployee))
	for _, res := range employeeResources {
		employee.Any("/"+res+"/", proxyHandler.Forward)
		employee.Any("/"+res+"/:id/", proxyHandler.Forward)
	}
	e.Any("/api/attendance/", proxyHandler.Forward, sessionMW, csrfMW, middleware.Guard(domain.RoleEmployee))

	// --- Shared authenticated routes ---
	shared := e.Group("", sessionMW, csrfMW, middleware.Guard())
	shared.Any("/api/departments/", proxyHandler.Forward)
	shared.Any("/api/leave-requests/", proxyHandler.Forward)
	shared.Any("/api/hr-users/", proxyHandler.Forward)

	return e
}

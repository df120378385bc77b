package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventdesk/event-management-api/internal/api/handler"
	"github.com/eventdesk/event-management-api/internal/api/middleware"
	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
	"github.com/eventdesk/event-management-api/internal/core/service"
	"github.com/eventdesk/event-management-api/internal/core/tokens"
	mongostore "github.com/eventdesk/event-management-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	issuer *tokens.Issuer,
	revocations ports.RevocationStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventapi"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	eventRepo := mongostore.NewEventRepository(db)
	projectRepo := mongostore.NewProjectRepository(db)

	authService := service.NewAuthService(userRepo, issuer, revocations, audit, log)
	userService := service.NewUserService(userRepo, audit, log)
	eventService := service.NewEventService(eventRepo, log)
	projectService := service.NewProjectService(projectRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	projectHandler := handler.NewProjectHandler(projectService)

	authMiddleware := middleware.Auth(issuer)

	// --- Auth routes (no token required) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Protected resource routes ---
	users := e.Group("/api/users", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateMe)
	users.GET("/:id", userHandler.Get)

	events := e.Group("/api/events", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	events.POST("", eventHandler.Create)
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)
	events.POST("/:id/join", eventHandler.Join)
	events.POST("/:id/leave", eventHandler.Leave)

	projects := e.Group("/api/projects", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.POST("/:id/members", projectHandler.AddMember)
	projects.DELETE("/:id/members/:user_id", projectHandler.RemoveMember)

	admin := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/roles", adminHandler.UpdateRoles)
	admin.POST("/users/:id/disable", adminHandler.DisableUser)
	admin.POST("/users/:id/enable", adminHandler.EnableUser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

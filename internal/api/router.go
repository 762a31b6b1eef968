package api

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskboard/taskboard/internal/api/handlers"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/service"
)

// SetupRouter wires repositories, services, and handlers onto an Echo
// instance.
func SetupRouter(db *sql.DB, tokens *auth.TokenManager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	taskService := service.NewTaskService(db, taskRepo)
	categoryService := service.NewCategoryService(db, categoryRepo)
	userService := service.NewUserService(db, userRepo, taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(userRepo, taskRepo)

	e.GET("/health", healthHandler.Status)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify, handlers.RequireAuth(tokens))

	tasks := e.Group("/tasks", handlers.RequireAuth(tokens))
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/move", taskHandler.Move)
	tasks.GET("/categories/list", categoryHandler.List)
	tasks.POST("/categories", categoryHandler.Create)
	tasks.PUT("/categories/:id", categoryHandler.Rename)
	tasks.DELETE("/categories/:id", categoryHandler.Delete)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	users := e.Group("/users", handlers.RequireAuth(tokens))
	users.GET("", userHandler.List, handlers.RequireRoles(models.RoleAdmin, models.RoleManager))
	users.POST("", userHandler.Create, handlers.RequireRoles(models.RoleAdmin))
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/tasks", userHandler.Tasks)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, handlers.RequireRoles(models.RoleAdmin))

	return e
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Debug("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}

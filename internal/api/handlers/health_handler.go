package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/repository"
)

type HealthHandler struct {
	users   *repository.UserRepository
	tasks   *repository.TaskRepository
	started time.Time
}

func NewHealthHandler(users *repository.UserRepository, tasks *repository.TaskRepository) *HealthHandler {
	return &HealthHandler{users: users, tasks: tasks, started: time.Now()}
}

func (h *HealthHandler) Status(c echo.Context) error {
	userCount, err := h.users.Count()
	if err != nil {
		return writeErr(c, err)
	}
	taskCount, err := h.tasks.Count()
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"started": humanize.Time(h.started),
		"users":   userCount,
		"tasks":   taskCount,
	})
}

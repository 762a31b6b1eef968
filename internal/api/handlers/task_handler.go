package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/service"
)

type CreateTaskRequestBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UserID      int64  `json:"user_id"`
	Status      string `json:"status"`
}

type UpdateTaskRequestBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	UserID      *int64  `json:"user_id"`
}

type MoveTaskRequestBody struct {
	TaskID      int64   `json:"taskId"`
	NewStatus   *string `json:"newStatus"`
	NewPosition *int    `json:"newPosition"`
	NewCategory *string `json:"newCategory"`
}

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.taskService.List(callerFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	task, err := h.taskService.Get(callerFrom(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Create(c echo.Context) error {
	var body CreateTaskRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	task, err := h.taskService.Create(callerFrom(c), service.CreateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Status:      models.Status(body.Status),
		UserID:      body.UserID,
	})
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Move(c echo.Context) error {
	var body MoveTaskRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	err := h.taskService.Move(callerFrom(c), service.MoveInput{
		TaskID:      body.TaskID,
		NewStatus:   body.NewStatus,
		NewPosition: body.NewPosition,
		NewCategory: body.NewCategory,
	})
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	var body UpdateTaskRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	task, err := h.taskService.Update(callerFrom(c), id, service.UpdateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
		Category:    body.Category,
		Status:      body.Status,
		UserID:      body.UserID,
	})
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task updated",
		"task":    task,
	})
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	if err := h.taskService.Delete(callerFrom(c), id); err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

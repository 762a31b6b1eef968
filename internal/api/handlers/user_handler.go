package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/service"
)

type CreateUserRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequestBody struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(callerFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	user, err := h.userService.Get(callerFrom(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Tasks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	tasks, err := h.userService.Tasks(callerFrom(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *UserHandler) Create(c echo.Context) error {
	var body CreateUserRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	user, err := h.userService.Create(callerFrom(c), service.CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     models.Role(body.Role),
	})
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	var body UpdateUserRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	in := service.UpdateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}
	if body.Role != nil {
		role := models.Role(*body.Role)
		in.Role = &role
	}

	user, err := h.userService.Update(callerFrom(c), id, in)
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	if err := h.userService.Delete(callerFrom(c), id); err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

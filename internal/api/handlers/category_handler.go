package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/service"
)

type CategoryRequestBody struct {
	Name string `json:"name"`
}

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(callerFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	category, err := h.categoryService.Create(callerFrom(c), body.Name)
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Category created",
		"category": category,
	})
}

func (h *CategoryHandler) Rename(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	category, err := h.categoryService.Rename(callerFrom(c), id, body.Name)
	if err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Category updated",
		"category": category,
	})
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeErr(c, err)
	}

	if err := h.categoryService.Delete(callerFrom(c), id); err != nil {
		return writeErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted"})
}

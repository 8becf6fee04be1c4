package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// CategoryHandler serves the category catalog. Reads are public; writes
// sit behind the admin policies in the router.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	cat := model.Category{Name: req.Name, Description: req.Description}
	if err := h.Categories.Create(ctx, &cat); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "category not found")
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	cat := model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.Categories.Update(ctx, &cat); err != nil {
		return writeRepoError(c, err, "category not found")
	}
	updated, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "category not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Categories.Delete(ctx, id); err != nil {
		return writeRepoError(c, err, "category not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}

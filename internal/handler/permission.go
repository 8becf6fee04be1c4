package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// PermissionHandler is the admin CRUD over permissions.
type PermissionHandler struct {
	Permissions *repository.PermissionRepo
}

func NewPermissionHandler(permissions *repository.PermissionRepo) *PermissionHandler {
	return &PermissionHandler{Permissions: permissions}
}

func (h *PermissionHandler) Create(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	perm := model.Permission{Name: req.Name, Description: req.Description}
	if err := h.Permissions.Create(ctx, &perm); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "permission already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, perm)
}

func (h *PermissionHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	perms, err := h.Permissions.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, perms)
}

func (h *PermissionHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	perm, err := h.Permissions.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "permission not found")
	}
	return c.JSON(http.StatusOK, perm)
}

func (h *PermissionHandler) Update(c echo.Context) error {
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
	perm := model.Permission{ID: id, Name: req.Name, Description: req.Description}
	if err := h.Permissions.Update(ctx, &perm); err != nil {
		return writeRepoError(c, err, "permission not found")
	}
	updated, err := h.Permissions.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "permission not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PermissionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Permissions.Delete(ctx, id); err != nil {
		return writeRepoError(c, err, "permission not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "permission deleted"})
}

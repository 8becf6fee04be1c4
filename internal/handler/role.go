package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// RoleStore is the slice of the role repository the handler needs.
// Satisfied by repository.RoleRepo.
type RoleStore interface {
	Create(ctx context.Context, role *model.Role) error
	GetByID(ctx context.Context, id uint64) (model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uint64) error
}

// RoleHandler is the admin CRUD over roles.
type RoleHandler struct {
	Roles RoleStore
}

func NewRoleHandler(roles RoleStore) *RoleHandler {
	return &RoleHandler{Roles: roles}
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	role := model.Role{Name: req.Name, Description: req.Description}
	if err := h.Roles.Create(ctx, &role); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	roles, err := h.Roles.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "role not found")
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Update(c echo.Context) error {
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
	role := model.Role{ID: id, Name: req.Name, Description: req.Description}
	if err := h.Roles.Update(ctx, &role); err != nil {
		return writeRepoError(c, err, "role not found")
	}
	updated, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "role not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Roles.Delete(ctx, id); err != nil {
		return writeRepoError(c, err, "role not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role deleted"})
}

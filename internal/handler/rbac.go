package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// RBACHandler manages the user-role and role-permission junctions.
// Both referenced sides are checked before inserting so a bad id fails
// with a 404 instead of a foreign-key error.
type RBACHandler struct {
	RBAC        *repository.RBACRepo
	Users       *repository.UserRepo
	Roles       *repository.RoleRepo
	Permissions *repository.PermissionRepo
}

func NewRBACHandler(rbac *repository.RBACRepo, users *repository.UserRepo, roles *repository.RoleRepo, permissions *repository.PermissionRepo) *RBACHandler {
	return &RBACHandler{RBAC: rbac, Users: users, Roles: roles, Permissions: permissions}
}

func (h *RBACHandler) AssignRole(c echo.Context) error {
	var req struct {
		UserID uint64 `json:"user_id"`
		RoleID uint64 `json:"role_id"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.RoleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and role_id are required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		return writeRepoError(c, err, "user not found")
	}
	if _, err := h.Roles.GetByID(ctx, req.RoleID); err != nil {
		return writeRepoError(c, err, "role not found")
	}
	ur := model.UserRole{UserID: req.UserID, RoleID: req.RoleID}
	if err := h.RBAC.AssignRole(ctx, &ur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, ur)
}

func (h *RBACHandler) ListUserRoles(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	out, err := h.RBAC.ListUserRoles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RBACHandler) DeleteUserRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.RBAC.DeleteUserRole(ctx, id); err != nil {
		return writeRepoError(c, err, "assignment not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "assignment removed"})
}

func (h *RBACHandler) GrantPermission(c echo.Context) error {
	var req struct {
		RoleID       uint64 `json:"role_id"`
		PermissionID uint64 `json:"permission_id"`
	}
	if err := c.Bind(&req); err != nil || req.RoleID == 0 || req.PermissionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role_id and permission_id are required"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if _, err := h.Roles.GetByID(ctx, req.RoleID); err != nil {
		return writeRepoError(c, err, "role not found")
	}
	if _, err := h.Permissions.GetByID(ctx, req.PermissionID); err != nil {
		return writeRepoError(c, err, "permission not found")
	}
	rp := model.RolePermission{RoleID: req.RoleID, PermissionID: req.PermissionID}
	if err := h.RBAC.GrantPermission(ctx, &rp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, rp)
}

func (h *RBACHandler) ListRolePermissions(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	out, err := h.RBAC.ListRolePermissions(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RBACHandler) DeleteRolePermission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.RBAC.DeleteRolePermission(ctx, id); err != nil {
		return writeRepoError(c, err, "grant not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "grant removed"})
}

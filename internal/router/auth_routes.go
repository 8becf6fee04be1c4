package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/handler"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
)

// RegisterAuth wires the authentication endpoints. The open endpoints
// live under /api/auth behind the rate limiter; logout and
// change-password additionally require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc, authGate echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	g.POST("/logout", a.Logout, authGate)
	g.POST("/change-password", a.ChangePassword, authGate)
}

// RegisterAdmin wires the user, role, permission and junction management
// endpoints. Everything here requires the ADMIN role; the mutating
// routes additionally demand the matching generic permission.
func RegisterAdmin(e *echo.Echo, u *handler.UserHandler, r *handler.RoleHandler, p *handler.PermissionHandler,
	j *handler.RBACHandler, authGate echo.MiddlewareFunc, grants middleware.GrantSource) {

	admin := func(perm string) echo.MiddlewareFunc {
		return middleware.RequirePolicy(grants, middleware.Policy{Role: model.RoleAdmin, Permission: perm})
	}

	g := e.Group("/api", authGate)

	g.GET("/users/me", u.Me)

	g.POST("/users", u.Create, admin("CREATE"))
	g.GET("/users", u.List, admin("READ"))
	g.GET("/users/:id", u.GetByID, admin("READ"))
	g.PUT("/users/:id", u.Update, admin("UPDATE"))
	g.DELETE("/users/:id", u.Delete, admin("DELETE"))

	g.POST("/roles", r.Create, admin("CREATE"))
	g.GET("/roles", r.List, admin("READ"))
	g.GET("/roles/:id", r.GetByID, admin("READ"))
	g.PUT("/roles/:id", r.Update, admin("UPDATE"))
	g.DELETE("/roles/:id", r.Delete, admin("DELETE"))

	g.POST("/permissions", p.Create, admin("CREATE"))
	g.GET("/permissions", p.List, admin("READ"))
	g.GET("/permissions/:id", p.GetByID, admin("READ"))
	g.PUT("/permissions/:id", p.Update, admin("UPDATE"))
	g.DELETE("/permissions/:id", p.Delete, admin("DELETE"))

	g.POST("/user-roles", j.AssignRole, admin("CREATE"))
	g.GET("/user-roles", j.ListUserRoles, admin("READ"))
	g.DELETE("/user-roles/:id", j.DeleteUserRole, admin("DELETE"))

	g.POST("/role-permissions", j.GrantPermission, admin("CREATE"))
	g.GET("/role-permissions", j.ListRolePermissions, admin("READ"))
	g.DELETE("/role-permissions/:id", j.DeleteRolePermission, admin("DELETE"))
}

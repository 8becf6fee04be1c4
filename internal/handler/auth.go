package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/auth"
	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
	"github.com/ngocminh/silvershop/internal/store"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Roles     *repository.RoleRepo
	RBAC      *repository.RBACRepo
	Blacklist *store.Blacklist
	Resets    *store.ResetStore
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, roles *repository.RoleRepo,
	rbac *repository.RBACRepo, blacklist *store.Blacklist, resets *store.ResetStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Roles: roles, RBAC: rbac, Blacklist: blacklist, Resets: resets}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user, assigns the default USER role through a
// junction record, and returns an access token valid for the configured
// TTL. Duplicate email and username are reported separately, matching
// the checks' order: email first.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if _, err := h.Users.GetByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	u := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	role, err := h.Roles.GetByName(ctx, model.RoleUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "default role missing"})
	}
	if err := h.RBAC.AssignRole(ctx, &model.UserRole{UserID: u.ID, RoleID: role.ID}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, []uint64{role.ID}, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"token":   access.Value,
		"expires": access.Exp,
		"user":    u,
	})
}

// Login verifies credentials and returns a token pair plus the caller's
// role names resolved through the junction table. Unknown username and
// wrong password both yield the same invalid-credentials answer.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	roleNames, err := h.RBAC.RoleNamesForUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	roleIDs, err := h.RBAC.RoleIDsForUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, roleIDs, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	refresh, err := auth.NewRefreshToken(h.Cfg.RefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "login successful",
		"token":         access.Value,
		"refresh_token": refresh.Value,
		"user": echo.Map{
			"id":       u.ID,
			"username": u.Username,
			"roles":    roleNames,
		},
	})
}

// Logout revokes the caller's bearer token by inserting it into the
// blacklist with its remaining lifetime; the store expires the entry on
// its own once the token would have died anyway. The route runs behind
// the auth gate, so the token in context is already verified.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, ok := c.Get(middleware.CtxToken).(string)
	if !ok || raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no token provided"})
	}
	_, exp, err := auth.Parse(h.Cfg.JWTSecret, raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Blacklist.Add(ctx, raw, exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new pair. The used refresh
// token is blacklisted for its remaining lifetime so it cannot be
// replayed.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqContext(c)
	defer cancel()

	revoked, err := h.Blacklist.Contains(ctx, raw)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if revoked {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "refresh token is blacklisted"})
	}

	userID, exp, err := auth.Parse(h.Cfg.RefreshSecret, raw)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid refresh token"})
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	roleIDs, err := h.RBAC.RoleIDsForUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, roleIDs, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	newRefresh, err := auth.NewRefreshToken(h.Cfg.RefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	// Rotate: the old refresh token dies with this exchange.
	if err := h.Blacklist.Add(ctx, raw, exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":         access.Value,
		"refresh_token": newRefresh.Value,
	})
}

// ForgotPassword issues a single-use reset token kept in the reset
// store with a TTL. Delivery by email is out of scope, so the token is
// returned in the response body.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	token, err := auth.RandomHex(32)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.Resets.Put(ctx, token, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reset_token": token})
}

// ResetPassword consumes a reset token and replaces the password hash.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token and new_password are required"})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	userID, err := h.Resets.Consume(ctx, req.Token)
	if err != nil {
		if err == store.ErrResetTokenInvalid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired reset token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	hash, err := auth.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return writeRepoError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// ChangePassword lets an authenticated user rotate their password after
// proving the current one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "old_password and new_password are required"})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	hash, err := auth.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return writeRepoError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

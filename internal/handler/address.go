package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

var addressTypes = map[string]bool{
	"Home": true, "Work": true, "Billing": true, "Shipping": true,
}

// AddressHandler manages the caller's saved addresses. Every lookup is
// scoped by the authenticated user id, so an id belonging to someone
// else reads as not found.
type AddressHandler struct {
	Addresses *repository.AddressRepo
}

func NewAddressHandler(addresses *repository.AddressRepo) *AddressHandler {
	return &AddressHandler{Addresses: addresses}
}

type addressRequest struct {
	Type       string `json:"type"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func (req *addressRequest) validate() string {
	if !addressTypes[req.Type] {
		return "type must be one of Home, Work, Billing, Shipping"
	}
	if strings.TrimSpace(req.Street) == "" || strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Country) == "" {
		return "street, city and country are required"
	}
	return ""
}

func (h *AddressHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	a := model.UserAddress{
		UserID:     user.ID,
		Type:       req.Type,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := h.Addresses.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	created, err := h.Addresses.GetByID(ctx, a.ID, user.ID)
	if err != nil {
		return writeRepoError(c, err, "address not found")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AddressHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	addrs, err := h.Addresses.ListByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *AddressHandler) GetByID(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	a, err := h.Addresses.GetByID(ctx, id, user.ID)
	if err != nil {
		return writeRepoError(c, err, "address not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AddressHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	a := model.UserAddress{
		ID:         id,
		UserID:     user.ID,
		Type:       req.Type,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := h.Addresses.Update(ctx, &a); err != nil {
		return writeRepoError(c, err, "address not found")
	}
	updated, err := h.Addresses.GetByID(ctx, id, user.ID)
	if err != nil {
		return writeRepoError(c, err, "address not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Addresses.Delete(ctx, id, user.ID); err != nil {
		return writeRepoError(c, err, "address not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "address deleted"})
}

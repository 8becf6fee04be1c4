package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// ProductHandler serves the product catalog. Reads are public; writes
// sit behind the admin policies in the router.
type ProductHandler struct {
	Products   *repository.ProductRepo
	Categories *repository.CategoryRepo
}

func NewProductHandler(products *repository.ProductRepo, categories *repository.CategoryRepo) *ProductHandler {
	return &ProductHandler{Products: products, Categories: categories}
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Stock       int64    `json:"stock"`
	CategoryID  uint64   `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	Material    string   `json:"material"`
	WeightGrams float64  `json:"weight_grams"`
	Size        string   `json:"size"`
	Style       string   `json:"style"`
	Tags        []string `json:"tags"`
}

func (req *productRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.PriceCents < 0 {
		return "price_cents must be non-negative"
	}
	if req.Stock < 0 {
		return "stock must be non-negative"
	}
	return ""
}

func (req *productRequest) toModel(id uint64) model.Product {
	return model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Material:    req.Material,
		WeightGrams: req.WeightGrams,
		Size:        req.Size,
		Style:       req.Style,
		Tags:        req.Tags,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if req.CategoryID != 0 {
		if _, err := h.Categories.GetByID(ctx, req.CategoryID); err != nil {
			return writeRepoError(c, err, "category not found")
		}
	}
	p := req.toModel(0)
	if err := h.Products.Create(ctx, &p); err != nil {
		return writeRepoError(c, err, "product not found")
	}
	created, err := h.Products.GetByID(ctx, p.ID)
	if err != nil {
		return writeRepoError(c, err, "product not found")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	products, err := h.Products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "product not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if req.CategoryID != 0 {
		if _, err := h.Categories.GetByID(ctx, req.CategoryID); err != nil {
			return writeRepoError(c, err, "category not found")
		}
	}
	p := req.toModel(id)
	if err := h.Products.Update(ctx, &p); err != nil {
		return writeRepoError(c, err, "product not found")
	}
	updated, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "product not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Products.Delete(ctx, id); err != nil {
		return writeRepoError(c, err, "product not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

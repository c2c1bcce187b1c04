package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gymstore/internal/errors"
	"gymstore/internal/service"
)

// AdminHandler handles admin-only catalog management endpoints.
type AdminHandler struct {
	catalogService service.CatalogService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(catalogService service.CatalogService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService}
}

// CreateProductRequest carries the admin product form. Precio arrives as a
// string so a non-numeric value is a reported validation error rather
// than a bind fault.
type CreateProductRequest struct {
	Nombre      string `json:"nombre" form:"nombre" validate:"required,max=255"`
	Precio      string `json:"precio" form:"precio" validate:"required"`
	Categoria   string `json:"categoria" form:"categoria"`
	Stock       int    `json:"stock" form:"stock" validate:"gte=0"`
	Descripcion string `json:"descripcion" form:"descripcion"`
	Imagen      string `json:"imagen" form:"imagen"`
}

// Panel godoc
// @Summary Admin product list
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin [get]
func (h *AdminHandler) Panel(c echo.Context) error {
	products, err := h.catalogService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"productos": products,
	})
}

// CreateProduct godoc
// @Summary Add a product to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/agregar [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := decimal.NewFromString(req.Precio)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidPrice)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	product, err := h.catalogService.Create(c.Request().Context(), service.CreateProductInput{
		Name:        req.Nombre,
		Price:       price,
		Category:    req.Categoria,
		Stock:       req.Stock,
		Description: req.Descripcion,
		Image:       req.Imagen,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "product created successfully",
		"producto": product,
	})
}

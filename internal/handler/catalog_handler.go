package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymstore/internal/errors"
	"gymstore/internal/service"
)

// CatalogHandler handles public catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts godoc
// @Summary List or search the catalog
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive substring of the product name"
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	query := c.QueryParam("search")

	products, err := h.catalogService.Search(c.Request().Context(), query)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"productos": products,
		"search":    query,
	})
}

// ProductDetail godoc
// @Summary Product detail with recommendations
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /producto/{id} [get]
func (h *CatalogHandler) ProductDetail(c echo.Context) error {
	id := c.Param("id")

	product, err := h.catalogService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	recommendations, err := h.catalogService.Recommendations(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"producto":     product,
		"recomendados": recommendations,
	})
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gymstore/internal/errors"
	"gymstore/internal/service"
)

// CartHandler handles cart and checkout endpoints. All routes sit behind
// the session middleware, so the user is always resolved.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// QuantityRequest carries the quantity form field. A nil quantity means
// the field was omitted and defaults to 1; a non-numeric value fails the
// bind and is reported as a validation error, never a fault.
type QuantityRequest struct {
	Quantity *int `json:"quantity" form:"quantity" validate:"omitempty,min=1"`
}

// ConfirmOrderRequest carries the shipping form fields.
type ConfirmOrderRequest struct {
	Nombre     string `json:"nombre" form:"nombre" validate:"required"`
	Direccion  string `json:"direccion" form:"direccion" validate:"required"`
	MetodoPago string `json:"metodo_pago" form:"metodo_pago" validate:"required"`
}

// AddItem godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body QuantityRequest false "Quantity (defaults to 1)"
// @Success 200 {object} service.CartView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /agregar_carrito/{id} [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	user := userFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrProductNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "quantity must be a number",
			Code:  "INVALID_QUANTITY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.cartService.AddItem(c.Request().Context(), user.ID, productID, quantity); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return h.respondWithCart(c, user.ID)
}

// ViewCart godoc
// @Summary Resolved cart with line items and total
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) ViewCart(c echo.Context) error {
	user := userFromContext(c)
	return h.respondWithCart(c, user.ID)
}

// UpdateQuantity godoc
// @Summary Overwrite the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body QuantityRequest false "New quantity (defaults to 1)"
// @Success 200 {object} service.CartView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /update_cart/{id} [post]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	user := userFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrProductNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "quantity must be a number",
			Code:  "INVALID_QUANTITY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.cartService.SetQuantity(c.Request().Context(), user.ID, productID, quantity); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return h.respondWithCart(c, user.ID)
}

// RemoveItem godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} service.CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /remove_from_cart/{id} [post]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user := userFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Removing a malformed id is as absent as removing an unknown one.
		return h.respondWithCart(c, user.ID)
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), user.ID, productID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return h.respondWithCart(c, user.ID)
}

// CheckoutView godoc
// @Summary Resolved cart for the checkout page
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /checkout [get]
func (h *CartHandler) CheckoutView(c echo.Context) error {
	user := userFromContext(c)
	return h.respondWithCart(c, user.ID)
}

// ConfirmOrder godoc
// @Summary Snapshot the cart into an order and clear it
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmOrderRequest true "Shipping data"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /confirm_order [post]
func (h *CartHandler) ConfirmOrder(c echo.Context) error {
	user := userFromContext(c)

	var req ConfirmOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.cartService.Checkout(c.Request().Context(), user.ID, service.CheckoutInput{
		RecipientName: req.Nombre,
		Address:       req.Direccion,
		PaymentMethod: req.MetodoPago,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "order placed successfully",
		"order":   order,
	})
}

func (h *CartHandler) respondWithCart(c echo.Context, userID uuid.UUID) error {
	view, err := h.cartService.View(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, view)
}

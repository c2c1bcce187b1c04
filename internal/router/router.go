package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gymstore/internal/auth"
	"gymstore/internal/config"
	"gymstore/internal/handler"
	"gymstore/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", catalogHandler.ListProducts)
	e.GET("/producto/:id", catalogHandler.ProductDetail)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout)

	// Session routes: the JWT middleware rejects anonymous callers with a
	// 401 and CurrentUser re-resolves the user record on every request.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), handler.CurrentUser(authService))

	// Cart routes
	secured.GET("/cart", cartHandler.ViewCart)
	secured.POST("/agregar_carrito/:id", cartHandler.AddItem)
	secured.POST("/update_cart/:id", cartHandler.UpdateQuantity)
	secured.POST("/remove_from_cart/:id", cartHandler.RemoveItem)

	// Checkout routes
	secured.GET("/checkout", cartHandler.CheckoutView)
	secured.POST("/confirm_order", cartHandler.ConfirmOrder)

	// Admin routes
	admin := secured.Group("/admin", handler.RequireAdmin())
	admin.GET("", adminHandler.Panel)
	admin.POST("/agregar", adminHandler.CreateProduct)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

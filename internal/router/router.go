package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"famreg/internal/auth"
	"famreg/internal/config"
	"famreg/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	tagHandler *handler.TagHandler,
	childHandler *handler.ChildHandler,
	parentHandler *handler.ParentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded parent images
	e.Static("/media", cfg.MediaDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/user/create", userHandler.Create)
	api.POST("/user/token", authHandler.Token)
	api.POST("/user/token/refresh", authHandler.Refresh)
	api.POST("/user/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile routes
	secured.GET("/user/me", userHandler.Me)
	secured.PATCH("/user/me", userHandler.UpdateMe)

	// Tag routes
	secured.GET("/tags", tagHandler.List)
	secured.POST("/tags", tagHandler.Create)

	// Child routes
	secured.GET("/children", childHandler.List)
	secured.POST("/children", childHandler.Create)

	// Parent routes
	secured.GET("/parents", parentHandler.List)
	secured.POST("/parents", parentHandler.Create)
	secured.GET("/parents/:id", parentHandler.Retrieve)
	secured.PUT("/parents/:id", parentHandler.Update)
	secured.PATCH("/parents/:id", parentHandler.PartialUpdate)
	secured.DELETE("/parents/:id", parentHandler.Delete)
	secured.POST("/parents/:id/upload-image", parentHandler.UploadImage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

package main

import (
	"net/http"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/handlers"
	"github.com/calltechcare/backend-go/logger"
	customMiddleware "github.com/calltechcare/backend-go/middleware"
	"github.com/calltechcare/backend-go/routes"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface; validation misses surface as 400s.
type CustomValidator struct {
	validate *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	// Load environment variables
	config.Load()
	logger.Initialize(config.C.Env)
	defer logger.Log.Sync()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(customMiddleware.RequestLogger())
	e.Use(customMiddleware.Metrics())

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Wire shared clients (CMS, Stripe, mailer, mailing list)
	handlers.Init()

	// Setup routes
	routes.SetupRoutes(e)

	logger.Log.Info("Server starting", zap.String("port", config.C.Port))
	e.Logger.Fatal(e.Start(":" + config.C.Port))
}

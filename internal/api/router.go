package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/api/handler"
	"github.com/bullyguard/bullyguard/internal/api/middleware"
	"github.com/bullyguard/bullyguard/internal/core/ports"
	"github.com/bullyguard/bullyguard/internal/session"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	AuthService       ports.AuthService
	PredictionService ports.PredictionService
	AnalyticsService  ports.AnalyticsService
	Sessions          *session.Manager
	// Readiness maps dependency names to their /health/ready checks.
	Readiness map[string]handler.PingFunc
	StaticDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Metrics())

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Sessions, deps.Logger)
	predictHandler := handler.NewPredictHandler(deps.PredictionService)
	analyticsHandler := handler.NewAnalyticsHandler(deps.AnalyticsService)
	requireSession := middleware.RequireSession(deps.Sessions)

	// --- Public pages ---
	e.GET("/", authHandler.Index)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	if deps.StaticDir != "" {
		e.Static("/static", deps.StaticDir)
	}

	// --- Signed-in pages ---
	e.GET("/home", predictHandler.Home, requireSession)
	e.GET("/predict", predictHandler.PredictForm, requireSession)
	e.POST("/predict", predictHandler.Predict, requireSession)
	e.GET("/history", predictHandler.History, requireSession)
	e.GET("/analytics", analyticsHandler.Show, requireSession)

	// --- Probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e, nil
}

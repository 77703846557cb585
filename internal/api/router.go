package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/guardian-ae/fleetwatch/docs"
	"github.com/guardian-ae/fleetwatch/internal/api/handler"
	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
	"github.com/guardian-ae/fleetwatch/internal/telemetry"
)

// Dependencies is everything the HTTP layer needs from the outside.
type Dependencies struct {
	// DeviceSecret signs the device identity cookie.
	DeviceSecret string

	Log      zerolog.Logger
	Provider ports.AuthProvider
	Widgets  *telemetry.Factory
	History  ports.HealthHistory
	Sink     handler.SnapshotSink
	Notifier handler.EmergencyNotifier
	Checks   map[string]handler.Check
}

// NewRouter builds the Echo instance with every route registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("fleetwatch"))

	// --- Operational endpoints (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Everything below is scoped to a device session ---
	app := e.Group("",
		middleware.DeviceIdentity(deps.DeviceSecret),
		middleware.AuthContext(deps.Provider),
	)

	authHandler := handler.NewAuthHandler(deps.Log)
	app.POST("/auth/login", authHandler.Login)
	app.POST("/auth/logout", authHandler.Logout)
	app.GET("/auth/session", authHandler.Session)

	registerViews(app, deps.Log)

	telemetryHandler := handler.NewTelemetryHandler(deps.Widgets, deps.History, deps.Sink, deps.Log)
	alertHandler := handler.NewAlertHandler()
	notificationHandler := handler.NewNotificationHandler(deps.Notifier)

	app.GET("/api/telemetry/:widget", telemetryHandler.Snapshot, middleware.RequireRoles("/api/telemetry"))
	app.GET("/api/health/history/:metric", telemetryHandler.History, middleware.RequireRoles("/api/health/history"))
	app.GET("/ws/telemetry/:widget", telemetryHandler.Stream, middleware.RequireRoles("/ws/telemetry"))
	app.POST("/api/alerts/priority", alertHandler.Priority, middleware.RequireRoles("/api/alerts/priority"))
	app.POST("/api/notifications/emergency", notificationHandler.Emergency,
		middleware.RequireRoles("/api/notifications/emergency", domain.RoleDriver))

	return e
}

// registerViews mounts every entry of the route table behind its guard.
func registerViews(g *echo.Group, log zerolog.Logger) {
	views := handler.NewViewHandler(log)
	for _, rule := range domain.RouteTable {
		switch {
		case rule.Public:
			g.GET(rule.Path, views.Login)
		case rule.RoleRedirect:
			g.GET(rule.Path, views.RoleRedirect, middleware.Guard(log, rule))
		default:
			g.GET(rule.Path, views.Render(rule), middleware.Guard(log, rule))
		}
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

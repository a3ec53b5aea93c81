package http

import (
	"net/http"

	"github.com/elastiquality/notify-api/internal/application/device"
	"github.com/elastiquality/notify-api/internal/application/dispatch"
	"github.com/elastiquality/notify-api/internal/application/notification"
	"github.com/elastiquality/notify-api/internal/application/preference"
	"github.com/elastiquality/notify-api/internal/config"
	"github.com/elastiquality/notify-api/internal/infrastructure/dynamo"
	"github.com/elastiquality/notify-api/internal/infrastructure/expo"
	jwtinfra "github.com/elastiquality/notify-api/internal/infrastructure/jwt"
	"github.com/elastiquality/notify-api/internal/infrastructure/smtp"
	"github.com/elastiquality/notify-api/internal/transport/http/handler"
	appmiddleware "github.com/elastiquality/notify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	DeviceTokenRepo  *dynamo.DeviceTokenRepo
	NotificationRepo *dynamo.NotificationRepo
	PushSender       *expo.Client
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 10 requests/second per IP, burst of 30, applied to dispatch.
	dispatchRL := appmiddleware.NewRateLimiter(rate.Limit(10), 30)

	dispatchSvc := dispatch.NewService(deps.UserRepo, deps.DeviceTokenRepo, deps.NotificationRepo, deps.PushSender, deps.Mailer)
	notifSvc := notification.NewService(deps.NotificationRepo)
	deviceSvc := device.NewService(deps.DeviceTokenRepo)
	prefSvc := preference.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	dispatchH := handler.NewDispatchHandler(dispatchSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	deviceH := handler.NewDeviceHandler(deviceSvc)
	prefH := handler.NewPreferenceHandler(prefSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.With(dispatchRL.Limit).Post("/notifications/dispatch", dispatchH.Dispatch)

			r.Get("/notifications", notifH.List)
			r.Put("/notifications/{id}/read", notifH.MarkAsRead)

			r.Get("/devices", deviceH.List)
			r.Post("/devices", deviceH.Register)
			r.Delete("/devices/{token}", deviceH.Delete)

			r.Get("/users/me/preferences", prefH.Get)
			r.Put("/users/me/preferences", prefH.Update)
		})
	})

	return r
}

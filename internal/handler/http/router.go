package http

import (
	"log/slog"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	healthHandler HealthHandler,
	employeeHandler EmployeeHandler,
	timeEntryHandler TimeEntryHandler,
	paymentHandler PaymentHandler,
	bonusRuleHandler BonusRuleHandler,
	earningsHandler EarningsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequirePermission(auth.PermissionEmployeeView))
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionTimeEntryView)).Get("/", timeEntryHandler.List)
				r.With(middleware.RequirePermission(auth.PermissionTimeEntryView)).Get("/{id}", timeEntryHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(auth.PermissionTimeEntryManage))
					r.Post("/", timeEntryHandler.Create)
					r.Put("/{id}", timeEntryHandler.Update)
					r.Delete("/{id}", timeEntryHandler.Delete)
				})
			})

			r.Route("/payments", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionPaymentView)).Get("/", paymentHandler.List)
				r.With(middleware.RequirePermission(auth.PermissionPaymentManage)).Post("/", paymentHandler.Create)
			})

			r.Route("/bonus-rules", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionBonusRuleView)).Get("/", bonusRuleHandler.List)
				r.With(middleware.RequirePermission(auth.PermissionBonusRuleView)).Get("/{id}", bonusRuleHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(auth.PermissionBonusRuleManage))
					r.Post("/", bonusRuleHandler.Create)
					r.Put("/{id}", bonusRuleHandler.Update)
					r.Delete("/{id}", bonusRuleHandler.Delete)
				})
			})

			r.Route("/earnings", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionEarningsView)).Get("/reconciliation", earningsHandler.Reconcile)
				r.With(middleware.RequirePermission(auth.PermissionEarningsView)).Get("/employees/{id}", earningsHandler.EmployeeEarnings)
				r.With(middleware.RequirePermission(auth.PermissionSnapshotView)).Get("/snapshots", earningsHandler.ListSnapshots)
			})
		})
	})
	return r
}

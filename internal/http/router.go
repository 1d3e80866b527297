package http

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/finance-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/finance-tracker/internal/logging"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

var (
	logger         = zerolog.Nop()
	limiter        *rl.Limiter
	trustedProxies []netip.Prefix
)

func SetLogger(l zerolog.Logger) {
	logger = l
}

// SetRateLimiter enables per-client limiting of the auth routes.
func SetRateLimiter(l *rl.Limiter) {
	limiter = l
}

// SetTrustedProxies lists the peers allowed to report the client address
// through X-Real-IP or X-Forwarded-For.
func SetTrustedProxies(p []netip.Prefix) {
	trustedProxies = p
}

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(ProxiedRealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/register", handlers.RegisterHandler)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/logout", handlers.LogoutHandler)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", handlers.FilterTransactionsHandler)
			r.Get("/filter", handlers.FilterTransactionsHandler)
			r.Get("/export", handlers.ExportTransactionsHandler)
			r.Post("/", handlers.CreateTransactionHandler)
			r.Post("/update", handlers.UpdateTransactionHandler)
			r.Post("/delete", handlers.DeleteTransactionHandler)
			r.Put("/{id}", handlers.UpdateTransactionHandler)
			r.Delete("/{id}", handlers.DeleteTransactionHandler)
		})

		r.Get("/categories", handlers.ListCategoriesHandler)

		r.Get("/analytics/summary", handlers.AnalyticsSummaryHandler)
		r.Get("/analytics/chart", handlers.AnalyticsChartHandler)
	})

	return r
}

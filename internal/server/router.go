package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/negatiview/negatiview/internal/server/auth"
	"github.com/negatiview/negatiview/internal/server/handlers"
	"github.com/negatiview/negatiview/internal/server/middleware"
	"github.com/negatiview/negatiview/internal/server/storage"
)

// Options собирает зависимости HTTP роутера
type Options struct {
	Logger   *slog.Logger
	Auth     *auth.Service
	Users    storage.UserStorage
	Sessions storage.SessionCache
	Limiter  *middleware.RateLimiter // nil отключает rate limiting
	Metrics  *middleware.Metrics     // nil отключает метрики
	Version  string
}

// NewRouter строит дерево маршрутов API с цепочкой middleware.
// Маршруты объявляют себя mandatory- или optional-auth через
// Require/Optional обертки.
func NewRouter(opts Options) http.Handler {
	authHandler := handlers.NewAuthHandler(opts.Logger, opts.Auth)
	userHandler := handlers.NewUserHandler(opts.Logger, opts.Users)
	healthHandler := handlers.NewHealthHandler(opts.Logger, opts.Version)

	authn := middleware.NewAuthenticator(opts.Logger, opts.Auth.AccessCodec(), opts.Sessions, opts.Users)

	limited := func(h http.Handler) http.Handler {
		if opts.Limiter == nil {
			return h
		}
		return opts.Limiter.Limit(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Credential endpoints под rate limiter
	mux.Handle("POST /api/users", limited(http.HandlerFunc(authHandler.SignUp)))
	mux.Handle("POST /api/login", limited(http.HandlerFunc(authHandler.Login)))

	// Logout идемпотентен и работает и без живой сессии
	mux.Handle("POST /api/logout", authn.Optional(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/me", authn.Require(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PUT /api/me", authn.Require(http.HandlerFunc(userHandler.UpdateMe)))

	var handler http.Handler = mux
	if opts.Metrics != nil {
		handler = opts.Metrics.Collect(handler)
	}
	handler = middleware.Logging(opts.Logger, "/api/health", "/metrics")(handler)
	handler = middleware.Recovery(opts.Logger)(handler)

	return handler
}

// Package server assembles the billsplit HTTP handler: the Connect
// services with their interceptors, /metrics and /healthz.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/events"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// Deps are the collaborators the handler is built from.
type Deps struct {
	Store        storage.Store
	Publisher    events.Publisher
	JWT          *auth.JWTManager
	CookieSecure bool
	// CORSOrigins lists the browser origins allowed to call the API with
	// credentials. Other origins get no CORS headers.
	CORSOrigins []string
	Logger      *slog.Logger
	// Registry receives the RPC metrics. A fresh registry with Go and
	// process collectors is created when nil.
	Registry *prometheus.Registry
}

// NewHandler returns the root handler, wrapped with h2c so Connect clients
// can use HTTP/2 without TLS.
func NewHandler(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
		d.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	metrics := middleware.NewMetrics(d.Registry)
	common := []connect.Interceptor{middleware.LoggingInterceptor(d.Logger), metrics.Interceptor()}
	with := func(extra ...connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(append(append([]connect.Interceptor{}, common...), extra...)...)
	}

	mux := http.NewServeMux()

	billPath, billHandler := apiconnect.NewBillServiceHandler(
		service.NewBillService(d.Store, d.Publisher, d.Logger),
		with(middleware.RequireAuth(d.JWT)),
	)
	mux.Handle(billPath, billHandler)

	sharedPath, sharedHandler := apiconnect.NewSharedServiceHandler(
		service.NewSharedService(d.Store, d.Publisher, d.Logger),
		with(),
	)
	mux.Handle(sharedPath, sharedHandler)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(d.Store), d.JWT, d.Store, d.CookieSecure, d.Logger)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc, with(middleware.OptionalAuth(d.JWT)))
	mux.Handle(authPath, authHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))
	mux.HandleFunc("GET /healthz", healthHandler(d.Store, d.Logger))

	return h2c.NewHandler(corsMiddleware(d.CORSOrigins, mux), &http2.Server{})
}

func healthHandler(store storage.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	}
}

// corsMiddleware adds CORS headers for the allowed origins. The origin is
// echoed so the session cookie can be sent with credentials, which is why
// it must match the list exactly.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimRight(origin, "/")] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/billsplit.v1.") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Add("Vary", "Origin")

		if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
			w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

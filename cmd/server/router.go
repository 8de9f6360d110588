package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/internal/storage"
	"github.com/divvyup/divvyup/pkg/api/v1/apiconnect"
)

type routerParams struct {
	Store         storage.Store
	JWTManager    *auth.JWTManager
	Hub           *notify.Hub
	JoinRateLimit int // JoinGroup calls per client IP per minute
}

// newRouter mounts the Connect services plus health and metrics endpoints.
func newRouter(p routerParams) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer, loggingMiddleware, corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Metrics outermost so rejected calls are counted; logging innermost so
	// it sees the authenticated participant.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(p.JWTManager,
			apiconnect.GroupServiceCreateGroupProcedure,
			apiconnect.GroupServiceJoinGroupProcedure,
		),
		middleware.LoggingInterceptor(),
	)

	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(
		service.NewGroupService(p.Store, p.JWTManager, p.Hub), interceptors)
	r.With(httprate.LimitByIP(p.JoinRateLimit, time.Minute)).
		Handle(apiconnect.GroupServiceJoinGroupProcedure, groupHandler)
	r.Handle(groupPath+"*", groupHandler)

	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(
		service.NewExpenseService(p.Store, p.Hub), interceptors)
	r.Handle(expensePath+"*", expenseHandler)

	balancePath, balanceHandler := apiconnect.NewBalanceServiceHandler(
		service.NewBalanceService(p.Store, p.Hub), interceptors)
	r.Handle(balancePath+"*", balanceHandler)

	return r
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

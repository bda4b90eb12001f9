package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retailcli/internal/config"
)

var requestCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "resultserver_requests_total",
		Help: "Total HTTP requests served, labelled by path pattern and status code.",
	},
	[]string{"pattern", "code"},
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	resultsDir := flag.String("results", "", "results directory to serve (defaults to configured paths.results_dir)")
	port := flag.Int("port", 0, "listen port (defaults to configured server.port)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	router := newRouter(cfg.Paths.ResultsDir)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("Result server listening",
		"addr", addr,
		"results_dir", cfg.Paths.ResultsDir)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func newRouter(resultsDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	h := newResultHandler(resultsDir)

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/results", h.listResults)
		r.Get("/results/{name}", h.getResult)
	})

	return r
}

// countRequests records one counter increment per request with the matched
// route pattern, not the raw URL, to keep cardinality bounded.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		requestCounter.WithLabelValues(pattern, fmt.Sprintf("%d", ww.Status())).Inc()
	})
}

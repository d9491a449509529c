package main

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"connectrpc.com/connect"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billsplit/internal/config"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
	"github.com/mmynk/billsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(cfg.LogLevel)

	handler, err := newHandler(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("Failed to build handler", "error", err)
		os.Exit(1)
	}

	slog.Info("Connect server starting", "address", cfg.Addr(), "url", "http://localhost"+cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newHandler assembles the HTTP handler: Connect services, metrics, optional
// static files, CORS and h2c.
func newHandler(cfg *config.Config, reg prometheus.Registerer) (http.Handler, error) {
	mux := http.NewServeMux()

	var splitMetrics *metrics.SplitMetrics
	if cfg.MetricsEnabled {
		splitMetrics = metrics.NewSplitMetrics(cfg.MetricsNamespace, reg)
		gatherer, ok := reg.(prometheus.Gatherer)
		if !ok {
			gatherer = prometheus.DefaultGatherer
		}
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(service.NewSplitService(splitMetrics), interceptors)
	mux.Handle(splitPath, splitHandler)

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", middleware.RequestIDHeader},
		MaxAge:         300,
	})

	// h2c serves HTTP/2 without TLS, required for Connect streaming clients
	return h2c.NewHandler(corsHandler(mux), &http2.Server{}), nil
}

// staticHandler serves the web client from dir. Any path that is not a
// regular file gets index.html so client-side routes load the app.
func staticHandler(dir string) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := root.Open(path.Clean(r.URL.Path)); err == nil {
			info, statErr := f.Stat()
			f.Close()
			if statErr == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	})
}

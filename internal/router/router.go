package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"car-leasing/internal/handler"
	"car-leasing/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the API handlers mounted by the router.
type Handlers struct {
	Vehicle *handler.VehicleHandler
	Order   *handler.OrderHandler
	Contact *handler.ContactHandler
	Session *handler.SessionHandler
}

// Options configures the router's cross-cutting behaviour.
type Options struct {
	SessionCookie string
	SessionTTL    time.Duration
	StaticDir     string // empty disables static file serving
	CORSOrigin    string // empty means any origin

	// Metrics and Gatherer are optional. When set, requests are instrumented
	// and /metrics exposes the gathered collectors.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", handler.Health)
	mux.HandleFunc("/api/vehicles", h.Vehicle.List)
	mux.HandleFunc("/api/order", h.Order.Create)
	mux.HandleFunc("/api/quote", h.Order.Quote)
	mux.HandleFunc("/api/contact", h.Contact.Submit)
	mux.HandleFunc("/api/last-order", h.Session.LastOrder)
	mux.HandleFunc("/api/", handler.NotFound)

	if opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	if opts.StaticDir != "" {
		mux.Handle("/", spaHandler(opts.StaticDir))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session -> Metrics.
	// Metrics sits next to the mux so it observes the matched route pattern.
	var next http.Handler = mux
	if opts.Metrics != nil {
		next = opts.Metrics.Instrument(next)
	}
	next = middleware.Session(opts.SessionCookie, opts.SessionTTL)(next)
	next = middleware.CORS(opts.CORSOrigin)(next)
	next = middleware.Logging(logger)(next)
	next = middleware.Recovery(logger)(next)

	return next
}

// spaHandler serves files from dir and answers every path that is not a
// regular file with dir/index.html.
func spaHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}
		files.ServeHTTP(w, r)
	})
}

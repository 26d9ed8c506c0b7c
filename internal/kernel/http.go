// Package kernel assembles lodge's HTTP handler: the global middleware
// stack, operational endpoints and the API routes.
package kernel

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/routes"
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
	"github.com/shashiranjanraj/lodge/pkg/middleware"
	"github.com/shashiranjanraj/lodge/pkg/reqid"
	"github.com/shashiranjanraj/lodge/pkg/response"
	"github.com/shashiranjanraj/lodge/pkg/router"
	"github.com/shashiranjanraj/lodge/pkg/session"
	"github.com/shashiranjanraj/lodge/pkg/storage"
)

// HTTPKernel owns the router and the collaborators routes are built from.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router for db, gw and disk.
func NewHTTPKernel(db *gorm.DB, gw auth.Gateway, disk storage.Disk) (*HTTPKernel, error) {
	r := router.New()

	// Outermost first: metrics see total latency, recovery guards
	// everything below it, the request ID exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.List("CORS_ALLOWED_ORIGINS"))))
	r.Use(middleware.RateLimit(middleware.NewLimiter(config.Int("RATE_LIMIT_PER_MINUTE", 300), config.Int("RATE_LIMIT_BURST", 50))))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	if local, ok := disk.(*storage.LocalDisk); ok {
		files := http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root())))
		r.Handle("/storage/*", "storage", files)
	}

	services.RegisterListeners()

	err := routes.RegisterAPI(r, routes.Deps{
		DB:           db,
		Gateway:      gw,
		Disk:         disk,
		ImagePrefix:  config.ProductImagePrefix(),
		PollInterval: config.BalancePollInterval(),
	})
	if err != nil {
		return nil, err
	}

	return &HTTPKernel{router: r}, nil
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table, for route:list.
func (k *HTTPKernel) Router() *router.Router { return k.router }

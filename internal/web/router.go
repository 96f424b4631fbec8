package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ch1tg/GameTrackr-web/internal/config"
	"github.com/ch1tg/GameTrackr-web/pkg/health"
	pkgmiddleware "github.com/ch1tg/GameTrackr-web/pkg/middleware"
)

//go:embed static
var staticFS embed.FS

// Handler bundles everything the route handlers need.
type Handler struct {
	renderer *Renderer
	logger   *slog.Logger
}

// NewRouter creates the chi router: global middleware, health and metrics
// endpoints, static assets, and the session-scoped page routes.
func NewRouter(cfg *config.Config, registry *Registry, healthHandler *health.Handler, logger *slog.Logger) (http.Handler, error) {
	renderer, err := NewRenderer(logger)
	if err != nil {
		return nil, err
	}
	h := &Handler{renderer: renderer, logger: logger}

	r := chi.NewRouter()

	// Global middleware stack (applied in order).
	r.Use(pkgmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	r.Use(pkgmiddleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(pkgmiddleware.RequestLogging(logger))
	r.Use(pkgmiddleware.PrometheusMetrics("web"))
	r.Use(pkgmiddleware.Tracing("web"))
	r.Use(pkgmiddleware.RequestLogger(logger))

	// Health check endpoints (no session required).
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Metrics endpoint with IP allowlist protection.
	metricsHandler := metricsIPAllowlist(cfg.MetricsAllowedCIDRs, logger)(promhttp.Handler())
	r.Get("/metrics", metricsHandler.ServeHTTP)

	// Embedded static assets.
	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	// Everything below runs with a resolved app session.
	r.Group(func(r chi.Router) {
		r.Use(Ensure(registry, cfg.SessionSecure))

		r.Get("/", h.Home)
		r.Get("/games/{gameID}", h.GameDetail)
		r.Post("/games/{gameID}/wishlist", h.WishlistToggle)
		r.Get("/users/{username}", h.Profile)
		r.Get("/users/{username}/wishlist", h.UserWishlist)
		r.Get("/search", h.Search)

		r.Get("/fragments/trending/more", h.TrendingMore)
		r.Get("/fragments/wishlist/{username}/more", h.UserWishlistMore)
		r.Get("/fragments/search/more", h.SearchMore)
		r.Get("/fragments/preview", h.PreviewFragment)

		r.Group(func(r chi.Router) {
			r.Use(AnonymousOnly)
			r.Get("/login", h.LoginPage)
			r.Post("/login", h.LoginSubmit)
			r.Get("/register", h.RegisterPage)
			r.Post("/register", h.RegisterSubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/logout", h.Logout)
			r.Get("/profile/edit", h.SettingsPage)
			r.Post("/profile/edit/profile", h.SettingsProfile)
			r.Post("/profile/edit/password", h.SettingsPassword)
			r.Post("/profile/edit/delete", h.SettingsDelete)
			r.Post("/users/{username}/wishlist/reset", h.WishlistReset)
		})
	})

	return r, nil
}

// metricsIPAllowlist restricts access to requests from IPs within the
// configured CIDR ranges.
func metricsIPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("invalid metrics CIDR, skipping", slog.String("cidr", cidr), slog.String("error", err.Error()))
			continue
		}
		nets = append(nets, ipNet)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			ip := net.ParseIP(host)

			allowed := false
			if ip != nil {
				for _, n := range nets {
					if n.Contains(ip) {
						allowed = true
						break
					}
				}
			}

			if !allowed {
				logger.Warn("metrics access denied", slog.String("ip", host))
				http.Error(w, "metrics endpoint is restricted", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

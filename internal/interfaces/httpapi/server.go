package httpapi

import (
	"net/http"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

// RouterConfig carries the cross-cutting settings of the HTTP surface.
type RouterConfig struct {
	CORSAllowedOrigins []string
	// AdminToken, when set, is required in X-Admin-Token on every mutating route.
	AdminToken     string
	RateLimitRPS   float64
	RateLimitBurst int
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAdminToken(cfg.AdminToken, fn)
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerSeasonRoutes(mux, handler, admin)
	registerMatchRoutes(mux, handler, admin)
	registerPlayerRoutes(mux, handler)

	var h http.Handler = mux
	h = RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, h)
	h = recoverPanic(logger, h)
	h = CORS(cfg.CORSAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/mw"
)

func init() { Register(registerIntercept) }

// registerIntercept catches every path not claimed by another route.
func registerIntercept(r chi.Router, d deps.Deps) {
	r.With(
		mw.InterceptHosts(d.InterceptHosts, http.HandlerFunc(handlers.PassThrough), d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateBurst,
			RefillPerIPPerMin: d.RatePerMin,
			MaxEntries:        10_000,
			TrustProxy:        d.TrustProxy,
		}),
	).HandleFunc("/*", handlers.Intercept(d))
}

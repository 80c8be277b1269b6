package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/mw"
	"github.com/MrSnakeDoc/wifijump/internal/logger"
)

// statsTimeout bounds the best-effort stats write per decision.
const statsTimeout = 200 * time.Millisecond

// Intercept applies the redirect rule to the request path: a match
// answers 302 to the rule prefix + path, anything else is a pass-through.
func Intercept(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// No snapshot yet: the SSID is unknown, not empty
		if !d.Network.Loaded() {
			PassThrough(w, r)
			return
		}

		ssid := d.Network.SSID()
		decision := domain.Decide(d.Rule, ssid, r.URL.EscapedPath())

		d.Logger.Debug("intercept decision",
			logger.String("ssid", ssid),
			logger.String("path", r.URL.EscapedPath()),
			logger.String("decision", decision.Kind.String()),
			logger.String("location", decision.Location))

		recordDecision(r.Context(), d, ssid, decision)

		if decision.IsRedirect() {
			w.Header().Set(mw.DecisionHeader, decision.Kind.String())
			http.Redirect(w, r, decision.Location, decision.Status)
			return
		}
		PassThrough(w, r)
	}
}

// PassThrough answers a request the rule leaves untouched.
func PassThrough(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(mw.DecisionHeader, domain.PassThrough.String())
	http.NotFound(w, r)
}

func recordDecision(ctx context.Context, d deps.Deps, ssid string, decision domain.Decision) {
	if d.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()

	if err := d.Store.RecordDecision(ctx, ssid, decision); err != nil {
		d.Logger.Debug("failed to record decision", logger.Error(err))
	}
}

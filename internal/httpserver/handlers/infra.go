package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool             `json:"ok"`
	Source     string           `json:"source,omitempty"`
	SSID       *string          `json:"ssid,omitempty"`
	LastReload string           `json:"last_reload,omitempty"`
	Mode       string           `json:"mode,omitempty"`
	Impact     string           `json:"impact,omitempty"`
	Outcomes   map[string]int64 `json:"outcomes,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type infraResponse struct {
	DecisionMode string                     `json:"decision_mode"`
	Components   map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ssid := d.Network.SSID()
		lastReload := d.Network.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		loaded := d.Network.Loaded()

		components := map[string]componentStatus{
			"network": {
				OK:         loaded,
				Source:     d.NetworkSource,
				SSID:       &ssid,
				LastReload: lastReloadStr,
			},
			"redis": checkRedis(r.Context(), d),
			"rule": {
				OK:   true,
				Mode: "exact-match",
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			DecisionMode: decisionMode(loaded, ssid == d.Rule.TargetIdentity),
			Components:   components,
		})
	}
}

// decisionMode reports what an intercepted request gets right now.
// Before the first snapshot everything passes through.
func decisionMode(loaded, onTarget bool) string {
	switch {
	case !loaded:
		return "not-ready"
	case onTarget:
		return "redirect"
	default:
		return "pass-through"
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "stats-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "stats-unavailable",
			Error:  err.Error(),
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "stats-enabled",
	}
	if stats, err := d.Store.GetOutcomeStats(ctx); err == nil {
		status.Outcomes = stats
	}
	return status
}

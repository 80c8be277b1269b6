package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/network"
	redisstore "github.com/MrSnakeDoc/wifijump/internal/store/redis"
)

type networkResponse struct {
	network.State
	Loaded       bool   `json:"loaded"`
	Target       bool   `json:"target"`
	LastRedirect string `json:"last_redirect,omitempty"`
}

type publishRequest struct {
	SSID string `json:"ssid"`
}

// Network reports the current network snapshot.
func Network(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := d.Network.Current()
		resp := networkResponse{
			State:  state,
			Loaded: d.Network.Loaded(),
			Target: state.SSID == d.Rule.TargetIdentity,
		}

		if d.Store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			if last, err := d.Store.GetLastRedirect(ctx, state.SSID); err == nil {
				resp.LastRedirect = last
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// PublishNetwork lets a network agent push the current SSID when the
// redis source is active, then triggers a reload.
func PublishNetwork(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil || d.NetworkSource != network.SourceRedis {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "network publishing requires the redis source"})
			return
		}

		var req publishRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDecideBody)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		if err := d.Store.SetNetworkSSID(r.Context(), req.SSID, redisstore.DefaultNetworkTTL); err != nil {
			d.Logger.Warn("failed to publish network ssid", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "redis unavailable"})
			return
		}

		d.Logger.Info("network ssid published",
			logger.String("ssid", req.SSID),
			logger.String("remote_ip", r.RemoteAddr))

		select {
		case d.ReloadTrigger <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

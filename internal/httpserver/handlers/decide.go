package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/logger"
)

// maxDecideBody caps the hook request body.
const maxDecideBody = 64 << 10

type decideRequest struct {
	// NetworkIdentity overrides the probed SSID when present (even if "").
	NetworkIdentity *string
	RequestPath     string
}

// parseDecideRequest reads the hook body leniently: an empty body, a
// non-object body or a request_path that is not a string all mean "".
// Only bytes that are not JSON at all are an error.
func parseDecideRequest(body io.Reader) (decideRequest, error) {
	var req decideRequest

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return req, nil
	}

	if v, ok := fields["network_identity"]; ok && string(v) != "null" {
		var identity string
		// Anything but a string can never equal an SSID
		_ = json.Unmarshal(v, &identity)
		req.NetworkIdentity = &identity
	}
	if v, ok := fields["request_path"]; ok {
		_ = json.Unmarshal(v, &req.RequestPath)
	}
	return req, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// Decide is the host-runtime hook: it runs the rule on the posted request
// path and replies with the host outcome object ({} for pass-through).
func Decide(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseDecideRequest(http.MaxBytesReader(w, r.Body, maxDecideBody))
		if err != nil {
			d.Logger.Debug("invalid decide request", logger.Error(err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		var ssid string
		switch {
		case req.NetworkIdentity != nil:
			ssid = *req.NetworkIdentity
		case !d.Network.Loaded():
			writeJSON(w, http.StatusOK, domain.HostOutcomeFor(domain.Decision{Kind: domain.PassThrough}))
			return
		default:
			ssid = d.Network.SSID()
		}

		decision := domain.Decide(d.Rule, ssid, req.RequestPath)
		recordDecision(r.Context(), d, ssid, decision)

		d.Logger.Debug("hook decision",
			logger.String("ssid", ssid),
			logger.String("path", req.RequestPath),
			logger.String("decision", decision.Kind.String()))

		writeJSON(w, http.StatusOK, domain.HostOutcomeFor(decision))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

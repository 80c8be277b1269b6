package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/utils"
)

// InterceptHosts hands requests to next only when r.Host matches one of
// hosts; other requests go to skip. Patterns may be "*.example.com".
// An empty list intercepts everything.
func InterceptHosts(hosts []string, skip http.Handler, log logger.Logger) func(http.Handler) http.Handler {
	if len(hosts) == 0 {
		log.Debug("InterceptHosts: empty host list, intercepting all hosts")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("InterceptHosts: initialized with hosts=%v", hosts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, pattern := range hosts {
				if matchHost(r.Host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debugf("InterceptHosts: Host %s not intercepted", r.Host)
			skip.ServeHTTP(w, r)
		})
	}
}

// matchHost compares case-insensitively, with or without the port.
func matchHost(host, pattern string) bool {
	pattern = strings.ToLower(pattern)
	if strings.EqualFold(host, pattern) {
		return true
	}

	bare := utils.StripPort(host)
	if bare == pattern {
		return true
	}

	// *.example.com matches sub.example.com but not example.com
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(bare, suffix)
	}
	return false
}

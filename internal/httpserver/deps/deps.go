package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/network"
)

// Store is the optional Redis-backed side of the service.
type Store interface {
	RecordDecision(ctx context.Context, ssid string, d domain.Decision) error
	GetOutcomeStats(ctx context.Context) (map[string]int64, error)
	GetLastRedirect(ctx context.Context, ssid string) (string, error)
	SetNetworkSSID(ctx context.Context, ssid string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Rule           domain.Rule       // redirect rule applied to intercepted requests
	Network        *network.Snapshot // current network state
	NetworkSource  string            // static | file | redis
	Store          Store             // nil when redis is disabled
	InterceptHosts []string          // Host headers subject to interception (empty = all)
	AllowedCIDRS   []string          // IPs allowed to reach API/admin endpoints
	TrustProxy     bool              // true if running behind a trusted reverse proxy
	RateBurst      int               // per-IP burst on intercepted requests
	RatePerMin     int               // per-IP refill on intercepted requests
	ReloadTrigger  chan struct{}     // manual network reload
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultNetworkTTL bounds how long a published SSID stays valid
// when the agent stops refreshing it.
const DefaultNetworkTTL = 10 * time.Minute

// Store handles Redis operations for network state and decision stats
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// GetNetworkSSID returns the published SSID, or "" when none is set
func (s *Store) GetNetworkSSID(ctx context.Context) (string, error) {
	ssid, err := s.client.Get(ctx, NetworkSSIDKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get network ssid: %w", err)
	}
	return ssid, nil
}

// SetNetworkSSID publishes the current SSID
func (s *Store) SetNetworkSSID(ctx context.Context, ssid string, ttl time.Duration) error {
	if err := s.client.Set(ctx, NetworkSSIDKey(), ssid, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set network ssid: %w", err)
	}
	return nil
}

// RecordDecision increments the counter for the decision kind and,
// for redirects, remembers the last location issued on that SSID
func (s *Store) RecordDecision(ctx context.Context, ssid string, d domain.Decision) error {
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, OutcomeStatsKey(), d.Kind.String(), 1)
	if d.IsRedirect() {
		pipe.Set(ctx, LastRedirectKey(ssid), d.Location, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// GetOutcomeStats returns decision counts keyed by kind name
func (s *Store) GetOutcomeStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, OutcomeStatsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get outcome stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for kind, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip counters that were overwritten by hand
			continue
		}
		stats[kind] = n
	}
	return stats, nil
}

// GetLastRedirect returns the last location issued on ssid, or ""
func (s *Store) GetLastRedirect(ctx context.Context, ssid string) (string, error) {
	location, err := s.client.Get(ctx, LastRedirectKey(ssid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get last redirect: %w", err)
	}
	return location, nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

package network

import (
	"context"
	"fmt"
	"time"
)

// SSIDReader reads the SSID published by a network agent.
type SSIDReader interface {
	GetNetworkSSID(ctx context.Context) (string, error)
}

// RedisSource reads the network state from a Redis key.
type RedisSource struct {
	reader SSIDReader
}

// NewRedisSource creates a Redis-backed source.
func NewRedisSource(reader SSIDReader) *RedisSource {
	return &RedisSource{reader: reader}
}

func (r *RedisSource) Name() string { return SourceRedis }

func (r *RedisSource) Load(ctx context.Context) (State, error) {
	ssid, err := r.reader.GetNetworkSSID(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to load network from redis: %w", err)
	}
	return State{
		SSID:       ssid,
		Source:     SourceRedis,
		ObservedAt: time.Now(),
	}, nil
}

package network

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Source kinds accepted by WIFIJUMP_NETWORK_SOURCE.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceRedis  = "redis"
)

// ErrUnknownSource is returned for an unsupported source kind.
var ErrUnknownSource = errors.New("unknown network source")

// Source loads the current network state from somewhere.
type Source interface {
	Name() string
	Load(ctx context.Context) (State, error)
}

// StaticSource always reports the same SSID.
type StaticSource struct {
	ssid string
}

// NewStaticSource creates a source pinned to ssid (may be empty).
func NewStaticSource(ssid string) *StaticSource {
	return &StaticSource{ssid: ssid}
}

func (s *StaticSource) Name() string { return SourceStatic }

func (s *StaticSource) Load(_ context.Context) (State, error) {
	return State{
		SSID:       s.ssid,
		Source:     SourceStatic,
		ObservedAt: time.Now(),
	}, nil
}

// SourceOptions selects and configures a Source.
type SourceOptions struct {
	Kind       string     // static | file | redis
	StaticSSID string     // used by static
	FilePath   string     // used by file
	Redis      SSIDReader // used by redis
}

// NewSource builds the source named by opts.Kind.
func NewSource(opts SourceOptions) (Source, error) {
	switch opts.Kind {
	case SourceStatic:
		return NewStaticSource(opts.StaticSSID), nil
	case SourceFile:
		if opts.FilePath == "" {
			return nil, errors.New("file source requires a file path")
		}
		return NewFileSource(opts.FilePath), nil
	case SourceRedis:
		if opts.Redis == nil {
			return nil, errors.New("redis source requires a redis store")
		}
		return NewRedisSource(opts.Redis), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, opts.Kind)
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/MrSnakeDoc/wifijump/internal/network"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestNetworkSSID(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	ssid, err := s.GetNetworkSSID(ctx)
	if err != nil {
		t.Fatalf("GetNetworkSSID() on missing key error = %v", err)
	}
	if ssid != "" {
		t.Errorf("GetNetworkSSID() on missing key = %q, want empty", ssid)
	}

	if err := s.SetNetworkSSID(ctx, "Apple", DefaultNetworkTTL); err != nil {
		t.Fatalf("SetNetworkSSID() error = %v", err)
	}
	if ttl := mr.TTL(NetworkSSIDKey()); ttl != DefaultNetworkTTL {
		t.Errorf("ttl = %v, want %v", ttl, DefaultNetworkTTL)
	}

	ssid, err = s.GetNetworkSSID(ctx)
	if err != nil || ssid != "Apple" {
		t.Fatalf("GetNetworkSSID() = %q, %v, want Apple", ssid, err)
	}

	mr.FastForward(DefaultNetworkTTL + time.Second)
	if ssid, _ := s.GetNetworkSSID(ctx); ssid != "" {
		t.Errorf("GetNetworkSSID() after expiry = %q, want empty", ssid)
	}
}

func TestRecordDecision(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	rule := domain.Rule{TargetIdentity: "Apple", RedirectHostPrefix: "http://192.168.1.215"}

	for _, tc := range []struct{ ssid, path string }{
		{"Apple", "/foo"},
		{"Apple", "/bar"},
		{"Guest", "/foo"},
	} {
		if err := s.RecordDecision(ctx, tc.ssid, domain.Decide(rule, tc.ssid, tc.path)); err != nil {
			t.Fatalf("RecordDecision(%s, %s) error = %v", tc.ssid, tc.path, err)
		}
	}

	stats, err := s.GetOutcomeStats(ctx)
	if err != nil {
		t.Fatalf("GetOutcomeStats() error = %v", err)
	}
	if stats["redirect"] != 2 || stats["pass-through"] != 1 {
		t.Errorf("stats = %v, want redirect=2 pass-through=1", stats)
	}

	last, err := s.GetLastRedirect(ctx, "Apple")
	if err != nil || last != "http://192.168.1.215/bar" {
		t.Errorf("GetLastRedirect(Apple) = %q, %v, want http://192.168.1.215/bar", last, err)
	}
	if ttl := mr.TTL(LastRedirectKey("Apple")); ttl != 0 {
		t.Errorf("last redirect ttl = %v, want none", ttl)
	}

	// Pass-through never stores a location
	last, err = s.GetLastRedirect(ctx, "Guest")
	if err != nil || last != "" {
		t.Errorf("GetLastRedirect(Guest) = %q, %v, want empty", last, err)
	}
}

func TestGetOutcomeStatsSkipsNonNumeric(t *testing.T) {
	s, mr := newTestStore(t)

	mr.HSet(OutcomeStatsKey(), "redirect", "7")
	mr.HSet(OutcomeStatsKey(), "pass-through", "lots")

	stats, err := s.GetOutcomeStats(context.Background())
	if err != nil {
		t.Fatalf("GetOutcomeStats() error = %v", err)
	}
	if len(stats) != 1 || stats["redirect"] != 7 {
		t.Errorf("stats = %v, want only redirect=7", stats)
	}
}

func TestStoreErrors(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	mr.Close()

	if err := s.Ping(ctx); err == nil {
		t.Error("Ping() on closed server should fail")
	}
	if _, err := s.GetNetworkSSID(ctx); err == nil {
		t.Error("GetNetworkSSID() on closed server should fail")
	}
	if err := s.RecordDecision(ctx, "Apple", domain.Decision{Kind: domain.PassThrough}); err == nil {
		t.Error("RecordDecision() on closed server should fail")
	}
	if _, err := s.GetOutcomeStats(ctx); err == nil {
		t.Error("GetOutcomeStats() on closed server should fail")
	}
}

func TestRedisSourceReadsStore(t *testing.T) {
	s, mr := newTestStore(t)
	source := network.NewRedisSource(s)
	ctx := context.Background()

	state, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing key error = %v", err)
	}
	if state.SSID != "" || state.Source != network.SourceRedis {
		t.Errorf("Load() = %+v, want empty redis state", state)
	}

	if err := mr.Set(NetworkSSIDKey(), "Apple"); err != nil {
		t.Fatal(err)
	}
	state, err = source.Load(ctx)
	if err != nil || state.SSID != "Apple" {
		t.Errorf("Load() = %+v, %v, want Apple", state, err)
	}
}

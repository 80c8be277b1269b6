package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/network"
)

// scriptedSource returns its current ssid/err and counts loads.
type scriptedSource struct {
	mu    sync.Mutex
	name  string
	ssid  string
	err   error
	loads int
}

func (s *scriptedSource) Name() string { return s.name }

func (s *scriptedSource) Load(context.Context) (network.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return network.State{}, s.err
	}
	return network.State{SSID: s.ssid, Source: s.name}, nil
}

func (s *scriptedSource) set(ssid string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ssid, s.err = ssid, err
}

func (s *scriptedSource) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNetworkReloader_StartLoadsImmediately(t *testing.T) {
	src := &scriptedSource{name: network.SourceFile, ssid: "Apple"}
	snap := network.NewSnapshot()
	nr := NewNetworkReloader(src, snap, logger.New("error", false), time.Hour, nil)

	if err := nr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer nr.Stop()

	if snap.SSID() != "Apple" {
		t.Errorf("SSID() = %q, want %q", snap.SSID(), "Apple")
	}
}

func TestNetworkReloader_StartFailsOnInitialError(t *testing.T) {
	src := &scriptedSource{name: network.SourceFile, err: errors.New("no file")}
	nr := NewNetworkReloader(src, network.NewSnapshot(), logger.New("error", false), time.Hour, nil)

	if err := nr.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail when the first load fails")
	}
	nr.Stop()
}

func TestNetworkReloader_PeriodicReload(t *testing.T) {
	src := &scriptedSource{name: network.SourceRedis, ssid: "Guest"}
	snap := network.NewSnapshot()
	nr := NewNetworkReloader(src, snap, logger.New("error", false), 10*time.Millisecond, nil)

	if err := nr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer nr.Stop()

	src.set("Apple", nil)
	waitFor(t, func() bool { return snap.SSID() == "Apple" })
}

func TestNetworkReloader_ErrorKeepsPreviousSnapshot(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	src := &scriptedSource{name: network.SourceFile, ssid: "Apple"}
	snap := network.NewSnapshot()
	nr := NewNetworkReloader(src, snap, logger.FromZap(zap.New(core)), 10*time.Millisecond, nil)

	if err := nr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer nr.Stop()

	src.set("", errors.New("file vanished"))
	waitFor(t, func() bool {
		return logs.FilterMessage("failed to reload network state, keeping previous snapshot").Len() > 0
	})

	if snap.SSID() != "Apple" {
		t.Errorf("SSID() = %q, want previous %q", snap.SSID(), "Apple")
	}
}

func TestNetworkReloader_ManualTrigger(t *testing.T) {
	trigger := make(chan struct{}, 1)
	src := &scriptedSource{name: network.SourceStatic, ssid: "Apple"}
	nr := NewNetworkReloader(src, network.NewSnapshot(), logger.New("error", false), time.Hour, trigger)

	if err := nr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer nr.Stop()

	trigger <- struct{}{}
	waitFor(t, func() bool { return src.loadCount() == 2 })
}

func TestNetworkReloader_LogsNetworkChange(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	src := &scriptedSource{name: network.SourceFile, ssid: "Guest"}
	nr := NewNetworkReloader(src, network.NewSnapshot(), logger.FromZap(zap.New(core)), time.Hour, nil)

	if err := nr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if logs.FilterMessage("network changed").Len() != 0 {
		t.Error("first load should not be reported as a change")
	}

	src.set("Apple", nil)
	if err := nr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	changes := logs.FilterMessage("network changed").All()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change entry, got %d", len(changes))
	}
	if to := changes[0].ContextMap()["to"]; to != "Apple" {
		t.Errorf("to = %v, want Apple", to)
	}
}

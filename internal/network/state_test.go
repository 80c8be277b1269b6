package network

import (
	"sync"
	"testing"
)

func TestSnapshotEmpty(t *testing.T) {
	s := NewSnapshot()

	if s.Loaded() {
		t.Error("new snapshot should not be loaded")
	}
	if s.SSID() != "" {
		t.Errorf("SSID() = %q, want empty", s.SSID())
	}
	if !s.LastReload().IsZero() {
		t.Error("LastReload() should be zero before first update")
	}
}

func TestSnapshotUpdate(t *testing.T) {
	s := NewSnapshot()
	s.Update(State{SSID: "Apple", Interface: "wlan0", Source: SourceFile})

	if !s.Loaded() {
		t.Error("snapshot should be loaded after Update")
	}
	if s.SSID() != "Apple" {
		t.Errorf("SSID() = %q, want %q", s.SSID(), "Apple")
	}
	if got := s.Current(); got.Interface != "wlan0" || got.Source != SourceFile {
		t.Errorf("Current() = %+v", got)
	}
	if s.LastReload().IsZero() {
		t.Error("LastReload() should be set after Update")
	}
}

func TestSnapshotConcurrentAccess(t *testing.T) {
	s := NewSnapshot()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update(State{SSID: "Apple"})
		}()
		go func() {
			defer wg.Done()
			_ = s.SSID()
		}()
	}
	wg.Wait()

	if s.SSID() != "Apple" {
		t.Errorf("SSID() = %q, want %q", s.SSID(), "Apple")
	}
}

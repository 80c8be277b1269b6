package network

import (
	"sync"
	"time"
)

// State is one observation of the current network.
type State struct {
	SSID       string    `json:"ssid"`
	Interface  string    `json:"interface,omitempty"`
	Source     string    `json:"source"`
	ObservedAt time.Time `json:"observed_at"`
}

// Probe exposes the current WiFi network name.
type Probe interface {
	SSID() string
}

// Snapshot holds the latest network state for concurrent readers.
// The reloader is its only writer.
type Snapshot struct {
	mu         sync.RWMutex
	state      State
	loaded     bool
	lastReload time.Time
}

// NewSnapshot creates an empty snapshot. SSID() returns "" until the
// first Update.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Update replaces the current state.
func (s *Snapshot) Update(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.loaded = true
	s.lastReload = time.Now()
}

// Current returns a copy of the current state.
func (s *Snapshot) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// SSID implements Probe.
func (s *Snapshot) SSID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.SSID
}

// Loaded reports whether the snapshot has been filled at least once.
func (s *Snapshot) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// LastReload returns the time of the last successful Update.
func (s *Snapshot) LastReload() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastReload
}

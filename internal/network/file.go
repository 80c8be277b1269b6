package network

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// statusFile is the document written by the OS network hook.
//
//	ssid: Apple
//	interface: wlan0
//	connected: true
type statusFile struct {
	SSID      string `yaml:"ssid"`
	Interface string `yaml:"interface,omitempty"`
	Connected *bool  `yaml:"connected,omitempty"`
}

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// FileSource reads the network state from a YAML status file.
type FileSource struct {
	filePath string
}

// NewFileSource creates a file-backed source.
func NewFileSource(filePath string) *FileSource {
	return &FileSource{filePath: filePath}
}

func (f *FileSource) Name() string { return SourceFile }

// Load reads and parses the status file. A file with connected: false
// reports an empty SSID.
func (f *FileSource) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		return State{}, fmt.Errorf("failed to read network file: %w", err)
	}

	// Unrendered hook templates ({{...}}) become empty strings
	data = templateVar.ReplaceAll(data, []byte(`""`))

	var doc statusFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("failed to parse network yaml: %w", err)
	}

	ssid := doc.SSID
	if doc.Connected != nil && !*doc.Connected {
		ssid = ""
	}

	return State{
		SSID:       ssid,
		Interface:  doc.Interface,
		Source:     SourceFile,
		ObservedAt: time.Now(),
	}, nil
}

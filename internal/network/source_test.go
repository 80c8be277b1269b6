package network

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeReader struct {
	ssid string
	err  error
}

func (f fakeReader) GetNetworkSSID(context.Context) (string, error) { return f.ssid, f.err }

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestStaticSource(t *testing.T) {
	state, err := NewStaticSource("Apple").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.SSID != "Apple" || state.Source != SourceStatic {
		t.Errorf("Load() = %+v", state)
	}
}

func TestFileSourceLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSSID string
		wantIf   string
	}{
		{
			name:     "connected",
			content:  "ssid: Apple\ninterface: wlan0\nconnected: true\n",
			wantSSID: "Apple",
			wantIf:   "wlan0",
		},
		{
			name:     "connected omitted",
			content:  "ssid: Apple\n",
			wantSSID: "Apple",
		},
		{
			name:     "disconnected",
			content:  "ssid: Apple\nconnected: false\n",
			wantSSID: "",
		},
		{
			name:     "template variable",
			content:  "ssid: {{WIFI_SSID}}\n",
			wantSSID: "",
		},
		{
			name:     "quoted with spaces kept verbatim",
			content:  "ssid: \" Apple \"\n",
			wantSSID: " Apple ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewFileSource(writeFile(t, tt.content))
			state, err := src.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if state.SSID != tt.wantSSID {
				t.Errorf("SSID = %q, want %q", state.SSID, tt.wantSSID)
			}
			if state.Interface != tt.wantIf {
				t.Errorf("Interface = %q, want %q", state.Interface, tt.wantIf)
			}
			if state.Source != SourceFile {
				t.Errorf("Source = %q, want %q", state.Source, SourceFile)
			}
		})
	}
}

func TestFileSourceLoadFileNotFound(t *testing.T) {
	_, err := NewFileSource("/nonexistent/path/network.yaml").Load(context.Background())
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestFileSourceLoadInvalidYAML(t *testing.T) {
	_, err := NewFileSource(writeFile(t, "ssid: [unterminated\n")).Load(context.Background())
	if err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}

func TestRedisSource(t *testing.T) {
	state, err := NewRedisSource(fakeReader{ssid: "Apple"}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.SSID != "Apple" || state.Source != SourceRedis {
		t.Errorf("Load() = %+v", state)
	}

	boom := errors.New("boom")
	if _, err := NewRedisSource(fakeReader{err: boom}).Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want wrapped %v", err, boom)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name     string
		opts     SourceOptions
		wantName string
		wantErr  bool
	}{
		{name: "static", opts: SourceOptions{Kind: SourceStatic}, wantName: SourceStatic},
		{name: "file", opts: SourceOptions{Kind: SourceFile, FilePath: "/tmp/x.yaml"}, wantName: SourceFile},
		{name: "file without path", opts: SourceOptions{Kind: SourceFile}, wantErr: true},
		{name: "redis", opts: SourceOptions{Kind: SourceRedis, Redis: fakeReader{}}, wantName: SourceRedis},
		{name: "redis without store", opts: SourceOptions{Kind: SourceRedis}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewSource() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
		})
	}

	if _, err := NewSource(SourceOptions{Kind: "nmcli"}); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("NewSource(unknown) error = %v, want ErrUnknownSource", err)
	}
}

package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLevel(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFromZapWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("decision",
		String("ssid", "Apple"),
		Int("status", 302),
		Bool("redirect", true),
		Error(errors.New("boom")))

	entries := logs.FilterMessage("decision").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["ssid"] != "Apple" {
		t.Errorf("ssid = %v", ctx["ssid"])
	}
	if ctx["status"] != int64(302) {
		t.Errorf("status = %v", ctx["status"])
	}
	if ctx["redirect"] != true {
		t.Errorf("redirect = %v", ctx["redirect"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %v", ctx["error"])
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		log := New("error", pretty)
		log.Debug("hidden")
		_ = log.Sync()
	}
}

package redis

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "network ssid", got: NetworkSSIDKey(), want: "wifijump:network:ssid"},
		{name: "outcome stats", got: OutcomeStatsKey(), want: "wifijump:stats:outcomes"},
		{name: "last redirect", got: LastRedirectKey("Apple"), want: "wifijump:last:Apple"},
		{name: "last redirect empty ssid", got: LastRedirectKey(""), want: "wifijump:last:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("key = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

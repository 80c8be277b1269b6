package redis

const (
	// KeyNetworkSSID holds the SSID published by the network agent
	KeyNetworkSSID = "wifijump:network:ssid"
	// KeyOutcomeStats is the hash of decision kind -> count
	KeyOutcomeStats = "wifijump:stats:outcomes"
	// KeyPrefixLastRedirect is the prefix for the last location per SSID
	KeyPrefixLastRedirect = "wifijump:last:"
)

// NetworkSSIDKey returns the Redis key holding the current SSID
func NetworkSSIDKey() string {
	return KeyNetworkSSID
}

// OutcomeStatsKey returns the Redis key of the outcome counters hash
func OutcomeStatsKey() string {
	return KeyOutcomeStats
}

// LastRedirectKey returns the Redis key for the last redirect issued on ssid
func LastRedirectKey(ssid string) string {
	return KeyPrefixLastRedirect + ssid
}

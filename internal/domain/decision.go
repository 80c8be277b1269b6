package domain

import "net/http"

// Kind tags the outcome of a redirect check.
type Kind int

const (
	// PassThrough leaves the intercepted request untouched.
	PassThrough Kind = iota
	// Redirect answers the intercepted request with a redirect.
	Redirect
)

// String returns the wire name used in logs, headers and stats.
func (k Kind) String() string {
	switch k {
	case Redirect:
		return "redirect"
	case PassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// Rule is the injected configuration of the decision unit.
type Rule struct {
	// TargetIdentity is the SSID that activates the redirect.
	// Compared byte for byte: no trimming, no case folding.
	TargetIdentity string

	// RedirectHostPrefix is prepended verbatim to the request path.
	// Example: http://192.168.1.215
	RedirectHostPrefix string
}

// Decision is the tagged outcome of a single invocation.
// Status and Location are only meaningful when Kind == Redirect.
type Decision struct {
	Kind     Kind
	Status   int
	Location string
}

// IsRedirect reports whether the decision rewrites the request.
func (d Decision) IsRedirect() bool { return d.Kind == Redirect }

// Decide compares the current network identity with the rule target.
// On an exact match it returns a 302 to RedirectHostPrefix + requestPath,
// otherwise PassThrough. It has no side effects.
func Decide(rule Rule, networkIdentity, requestPath string) Decision {
	if networkIdentity != rule.TargetIdentity {
		return Decision{Kind: PassThrough}
	}
	return Decision{
		Kind:     Redirect,
		Status:   http.StatusFound,
		Location: rule.RedirectHostPrefix + requestPath,
	}
}

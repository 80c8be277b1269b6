package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedOutcome is returned when a host outcome carries a response
// that cannot be turned back into a redirect.
var ErrMalformedOutcome = errors.New("malformed host outcome")

// HostOutcome is the structured object handed to the host runtime.
//
//	redirect:     {"response":{"status":302,"headers":{"Location":"..."}}}
//	pass-through: {}
type HostOutcome struct {
	Response *HostResponse `json:"response,omitempty"`
}

// HostResponse is the response injected by the host in place of the request.
type HostResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
}

// HostOutcomeFor renders a decision into the host sink shape.
func HostOutcomeFor(d Decision) HostOutcome {
	if !d.IsRedirect() {
		return HostOutcome{}
	}
	return HostOutcome{
		Response: &HostResponse{
			Status:  d.Status,
			Headers: map[string]string{"Location": d.Location},
		},
	}
}

// ParseHostOutcome decodes a host outcome back into a Decision.
// An object without "response" is a pass-through.
func ParseHostOutcome(data []byte) (Decision, error) {
	var out HostOutcome
	if err := json.Unmarshal(data, &out); err != nil {
		return Decision{}, fmt.Errorf("failed to decode host outcome: %w", err)
	}
	if out.Response == nil {
		return Decision{Kind: PassThrough}, nil
	}

	location, ok := out.Response.Headers["Location"]
	if !ok {
		return Decision{}, fmt.Errorf("%w: response without Location header", ErrMalformedOutcome)
	}

	status := out.Response.Status
	if status == 0 {
		status = http.StatusFound
	}
	return Decision{Kind: Redirect, Status: status, Location: location}, nil
}

// Package api provides the client for the split-flap message-storage service.
package api

// Resource paths relative to the API base ({service address}/api).
const (
	PathMessage = "/message"
	PathMode    = "/mode"
)

// Display modes accepted by PUT /mode
const (
	ModeMessage = "message"
	ModeClock   = "clock"
)

// AvailableModes returns the display modes the service understands
func AvailableModes() []string {
	return []string{ModeMessage, ModeClock}
}

// maxErrorBody caps how much of a failed response body is kept for diagnostics
const maxErrorBody = 2048

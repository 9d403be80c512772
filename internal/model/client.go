package model

const ClientTypeWindow = "window"

// Client describes a page connected to the worker's event stream.
type Client struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

const (
	EventNotification = "notification"
	EventClose        = "close"
	EventFocus        = "focus"
	EventClaim        = "claim"
)

// Event is a worker-to-page message delivered over SSE.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

package types

// PublishRequest is the payload accepted by POST /events.
type PublishRequest struct {
	// Event kind.
	// example: transaction_heuristic
	Kind string `json:"kind"`
	// Transaction identifier the event refers to.
	// example: tm1234
	TransactionID string `json:"transaction_id"`
	// Optional participant URI for participant-scoped events.
	// example: jdbc:orders
	Participant string `json:"participant,omitempty"`
	// Optional free-form attributes rendered into the event text.
	Fields map[string]string `json:"fields,omitempty"`
}

// ListenerResult reports one listener invocation.
type ListenerResult struct {
	// Listener identity.
	// example: log
	Listener string `json:"listener"`
	// Empty on success.
	Error string `json:"error,omitempty"`
}

// PublishResponse is returned by POST /events.
type PublishResponse struct {
	// Identifier assigned to the published event.
	ID string `json:"id"`
	// Per-listener outcomes; empty when no listener is registered.
	Results []ListenerResult `json:"results"`
}

// ListenersResponse wraps GET /listeners.
type ListenersResponse struct {
	// Identities of registered listeners.
	Listeners []string `json:"listeners"`
	// Names of the providers linked into the binary.
	Providers []string `json:"providers"`
}

// PropertiesResponse wraps GET /properties.
type PropertiesResponse struct {
	// Resolved properties, defaults overlaid by overrides.
	Properties map[string]string `json:"properties"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error"`
	// HTTP status code.
	// example: 400
	Code int `json:"code"`
}

// RecentEvent is one entry of GET /events/recent.
type RecentEvent struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// RecentEventsResponse wraps GET /events/recent, oldest first.
type RecentEventsResponse struct {
	Events []RecentEvent `json:"events"`
}

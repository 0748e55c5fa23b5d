package refine

import "time"

// Event describes one refinement attempt for downstream diagnostics.
type Event struct {
	RequestID  string    `json:"request_id"`
	TemplateID string    `json:"template_id,omitempty"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Refined    bool      `json:"refined"`
	Reason     string    `json:"reason,omitempty"`
	InputLen   int       `json:"input_len"`
	OutputLen  int       `json:"output_len"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers events. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event is the canonical audit event model used by internal dispatching and
// root APIs.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	IP        string            `json:"ip,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink receives emitted audit events. Implementations must tolerate
// concurrent Emit calls.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink hands audit events to consumers over a buffered channel.
// Emit blocks when the channel is full; pair it with a dispatcher in
// drop-if-full mode to keep the request path unblocked.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the sink's channel.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per line. Writes are serialized, so
// any io.Writer works, including os.Stderr and log files.
type JSONWriterSink struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	if w == nil {
		return &JSONWriterSink{}
	}
	return &JSONWriterSink{encoder: json.NewEncoder(w)}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.encoder == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Encode appends a trailing newline; marshal failures are dropped
	// rather than surfaced into the request path.
	_ = s.encoder.Encode(event)
}

package trace

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Span is one recorded workspace command.
type Span struct {
	TraceID    string
	SpanID     string
	Name       string            // Command name, e.g. "split" or "move-tab"
	StartTime  time.Time
	Duration   time.Duration
	Attributes map[string]string // Command arguments and outcome
}

// End returns the time the span finished.
func (s *Span) End() time.Time {
	return s.StartTime.Add(s.Duration)
}

// NewTraceID generates a random 16-byte trace ID as hex string (32 characters)
func NewTraceID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// NewSpanID generates a random 8-byte span ID as hex string (16 characters)
func NewSpanID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

package trace

import (
	"context"
	"log"
	"maps"
	"sync"
	"time"
)

// Recorder keeps the most recent command spans of a session and forwards
// finished spans to the OTLP exporter when one is configured. All spans of
// one Recorder share a trace ID.
type Recorder struct {
	mu       sync.RWMutex
	traceID  string
	recent   []*Span // Oldest first, at most maxSpans
	maxSpans int
	exporter *OTLPExporter // nil when OTLP export is disabled
	now      func() time.Time
}

// NewRecorder creates a recorder that keeps maxSpans spans (default 50) and
// exports to OTLP if OTEL_EXPORTER_OTLP_ENDPOINT is set. An exporter that
// cannot be created is logged and skipped.
func NewRecorder(maxSpans int) *Recorder {
	exporter, err := NewOTLPExporter(context.Background(), OTLPConfigFromEnv())
	if err != nil {
		log.Printf("trace: %v", err)
	}
	return NewRecorderWithExporter(maxSpans, exporter)
}

// NewRecorderWithExporter creates a recorder with an explicit exporter,
// which may be nil.
func NewRecorderWithExporter(maxSpans int, exporter *OTLPExporter) *Recorder {
	if maxSpans <= 0 {
		maxSpans = 50
	}
	return &Recorder{
		traceID:  NewTraceID(),
		recent:   make([]*Span, 0, maxSpans),
		maxSpans: maxSpans,
		exporter: exporter,
		now:      time.Now,
	}
}

// TraceID returns the trace shared by all spans of this recorder.
func (r *Recorder) TraceID() string {
	return r.traceID
}

// Start opens a span for a command. The span is not visible until End.
func (r *Recorder) Start(name string, attrs map[string]string) *Span {
	span := &Span{
		TraceID:    r.traceID,
		SpanID:     NewSpanID(),
		Name:       name,
		StartTime:  r.now(),
		Attributes: make(map[string]string, len(attrs)),
	}
	maps.Copy(span.Attributes, attrs)
	return span
}

// End closes span, stores it and exports it.
func (r *Recorder) End(ctx context.Context, span *Span) {
	span.Duration = r.now().Sub(span.StartTime)

	r.mu.Lock()
	r.recent = append(r.recent, span)
	if len(r.recent) > r.maxSpans {
		r.recent = r.recent[len(r.recent)-r.maxSpans:]
	}
	exporter := r.exporter
	r.mu.Unlock()

	if exporter != nil {
		// Export errors are dropped: log output would corrupt the TUI.
		_ = exporter.ExportSpan(ctx, span)
	}
}

// Recent returns recorded spans, newest first.
func (r *Recorder) Recent() []*Span {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Span, 0, len(r.recent))
	for i := len(r.recent) - 1; i >= 0; i-- {
		result = append(result, r.recent[i])
	}
	return result
}

// Shutdown flushes pending exports and closes the OTLP exporter.
// Must be called before process exit to ensure spans are exported.
func (r *Recorder) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	exporter := r.exporter
	r.mu.Unlock()

	if exporter != nil {
		return exporter.Shutdown(ctx)
	}
	return nil
}

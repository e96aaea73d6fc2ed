package telemetry

import (
	"context"

	"github.com/zam-dot/contrastscope/contrast"
)

// Recorder receives the outcome of every audit.
type Recorder interface {
	// RecordAudit records the report produced for target.
	RecordAudit(ctx context.Context, target string, r contrast.Report) error
	// Close flushes pending metrics.
	Close(ctx context.Context) error
}

// Config holds OTLP exporter configuration.
type Config struct {
	Enabled  bool
	Endpoint string
	Insecure bool
}

// NoOpRecorder discards everything.
type NoOpRecorder struct{}

// NewNoOpRecorder returns a recorder for when telemetry is disabled.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (NoOpRecorder) RecordAudit(ctx context.Context, target string, r contrast.Report) error {
	return nil
}

func (NoOpRecorder) Close(ctx context.Context) error {
	return nil
}

// Package enhance refines a base heuristic analysis through an external
// language model. Model output is untrusted: every candidate is validated
// field by field, and any failure falls back to the base analysis.
package enhance

import (
	"context"
	"log/slog"
	"time"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/metrics"
)

// Enhancer produces a refined analysis candidate for the given text.
// Implementations must return an error rather than a partially valid result.
type Enhancer interface {
	Enhance(ctx context.Context, text string, base analyzer.Analysis) (analyzer.Analysis, error)
}

// Noop returns the base analysis unchanged. Used when no model is configured.
type Noop struct{}

func (Noop) Enhance(_ context.Context, _ string, base analyzer.Analysis) (analyzer.Analysis, error) {
	return base, nil
}

// Apply runs e under a timeout and falls back to base on any failure.
func Apply(ctx context.Context, e Enhancer, timeout time.Duration, text string, base analyzer.Analysis) analyzer.Analysis {
	if e == nil {
		return base
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	metrics.IncrEnhanceCalls()
	out, err := e.Enhance(ctx, text, base)
	if err != nil {
		metrics.IncrEnhanceErrors()
		slog.Debug("enhancement failed, keeping base analysis", slog.Any("error", err))
		return base
	}
	return out
}

package solver

import (
	"log/slog"
	"time"
)

// Telemetry observes a refinement run: free-form log lines, one
// event per seeded initial individual, one per completed generation.
// Sinks must tolerate being called from the simulator's goroutine only —
// the engine never invokes telemetry concurrently.
type Telemetry interface {
	Log(message string)
	OnInitial(idx, total int, elapsed time.Duration)
	OnGeneration(ctx *RefinementContext, progress float64, elapsed time.Duration, improved bool)
}

// NopTelemetry discards everything.
type NopTelemetry struct{}

// Log implements Telemetry.
func (NopTelemetry) Log(string) {}

// OnInitial implements Telemetry.
func (NopTelemetry) OnInitial(int, int, time.Duration) {}

// OnGeneration implements Telemetry.
func (NopTelemetry) OnGeneration(*RefinementContext, float64, time.Duration, bool) {}

// SlogTelemetry is the structured-logging sink, writing through a
// *slog.Logger. It is not installed by default: a Config with no
// Telemetry gets NopTelemetry.
type SlogTelemetry struct {
	logger *slog.Logger
}

// NewSlogTelemetry wraps logger; nil falls back to slog.Default().
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{logger: logger}
}

// Log implements Telemetry.
func (t *SlogTelemetry) Log(message string) {
	t.logger.Info(message)
}

// OnInitial implements Telemetry.
func (t *SlogTelemetry) OnInitial(idx, total int, elapsed time.Duration) {
	t.logger.Info("initial solution built",
		"idx", idx+1,
		"total", total,
		"elapsed", elapsed)
}

// OnGeneration implements Telemetry.
func (t *SlogTelemetry) OnGeneration(ctx *RefinementContext, progress float64, elapsed time.Duration, improved bool) {
	attrs := []any{
		"generation", ctx.Generation(),
		"progress", progress,
		"elapsed", elapsed,
		"improved", improved,
		"population", ctx.PopulationSize(),
	}
	if best, ok := ctx.BestCost(); ok {
		attrs = append(attrs, "best_cost", best)
		if ind := ctx.Population().Select(); ind != nil {
			attrs = append(attrs, "best_id", ind.ID)
		}
	}
	t.logger.Info("generation", attrs...)
}

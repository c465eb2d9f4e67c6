package service

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent is one finished service call: a gesture persisted, a range
// proposed, an import run.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// DefaultSlowCall is the duration above which a successful call is logged
// as a warning. Board gestures wait on these calls.
const DefaultSlowCall = 250 * time.Millisecond

type logUseCaseObserver struct {
	logger *slog.Logger
	slow   time.Duration
}

// LogOption configures NewLogUseCaseObserver.
type LogOption func(*logUseCaseObserver)

// WithSlowCall overrides DefaultSlowCall. Zero disables the warning.
func WithSlowCall(d time.Duration) LogOption {
	return func(o *logUseCaseObserver) { o.slow = d }
}

// NewLogUseCaseObserver writes one logfmt line per service call to w.
func NewLogUseCaseObserver(w io.Writer, opts ...LogOption) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	o := &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
		slow:   DefaultSlowCall,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	// Sorted so repeated calls line up when tailing the log.
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, k, event.Fields[k])
	}

	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "eventboard_call", attrs...)
	case o.slow > 0 && event.Duration > o.slow:
		o.logger.WarnContext(ctx, "eventboard_slow_call", attrs...)
	default:
		o.logger.InfoContext(ctx, "eventboard_call", attrs...)
	}
}

// fanoutObserver forwards every event to each observer in order.
type fanoutObserver []UseCaseObserver

func (f fanoutObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop combines the non-nil observers. A single observer
// is returned as is.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live fanoutObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

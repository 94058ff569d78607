package db

import (
	"context"
	"log/slog"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Hook interface
// ─────────────────────────────────────────────────────────────────────────────

// Hook runs around every statement execution. Both methods receive the same
// context, query, and args so tracing spans can start in BeforeQuery and
// finish in AfterQuery.
//
// Implementations MUST be goroutine-safe and SHOULD be non-blocking. Panics
// inside a hook are recovered by the dispatcher and logged.
type Hook interface {
	// BeforeQuery runs immediately before the statement reaches the driver.
	BeforeQuery(ctx context.Context, query string, args []any)

	// AfterQuery runs after the driver returns. duration is the wall-clock
	// time spent in the driver call; err is the already-mapped error the
	// caller will see, nil on success.
	AfterQuery(ctx context.Context, query string, args []any, duration time.Duration, err error)
}

// ─────────────────────────────────────────────────────────────────────────────
// hookChain
// ─────────────────────────────────────────────────────────────────────────────

type hookChain struct {
	hooks []Hook
}

func newHookChain(hooks []Hook) hookChain {
	filtered := make([]Hook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			filtered = append(filtered, h)
		}
	}
	return hookChain{hooks: filtered}
}

func (c hookChain) Before(ctx context.Context, query string, args []any) {
	for _, h := range c.hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("jobly/db: hook panic in BeforeQuery", "panic", r)
				}
			}()
			h.BeforeQuery(ctx, query, args)
		}()
	}
}

func (c hookChain) After(ctx context.Context, query string, args []any, d time.Duration, err error) {
	for _, h := range c.hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("jobly/db: hook panic in AfterQuery", "panic", r)
				}
			}()
			h.AfterQuery(ctx, query, args, d, err)
		}()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging hook
// ─────────────────────────────────────────────────────────────────────────────

// LogHookConfig configures the structured logging hook.
type LogHookConfig struct {
	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
	// SlowQueryThreshold logs a warning when duration exceeds it.
	// Zero disables slow-query logging.
	SlowQueryThreshold time.Duration
	// LogArgs includes bound parameters in log entries. Leave off in
	// production if args may contain PII.
	LogArgs bool
}

// NewLogHook returns a Hook emitting structured log entries via slog.
func NewLogHook(cfg LogHookConfig) Hook {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &logHook{cfg: cfg, logger: logger}
}

type logHook struct {
	cfg    LogHookConfig
	logger *slog.Logger
}

func (h *logHook) BeforeQuery(_ context.Context, _ string, _ []any) {}

func (h *logHook) AfterQuery(ctx context.Context, query string, args []any, d time.Duration, err error) {
	attrs := []any{
		slog.String("query", trimQuery(query)),
		slog.Duration("duration", d),
	}
	if h.cfg.LogArgs && len(args) > 0 {
		attrs = append(attrs, slog.Any("args", args))
	}

	switch {
	case err != nil:
		h.logger.ErrorContext(ctx, "jobly/db: query error", append(attrs, slog.Any("error", err))...)
	case h.cfg.SlowQueryThreshold > 0 && d > h.cfg.SlowQueryThreshold:
		h.logger.WarnContext(ctx, "jobly/db: slow query", attrs...)
	default:
		h.logger.DebugContext(ctx, "jobly/db: query", attrs...)
	}
}

func trimQuery(q string) string {
	if len(q) > 500 {
		return q[:500] + "…"
	}
	return q
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics hook
// ─────────────────────────────────────────────────────────────────────────────

// MetricsCollector is the surface a metrics backend must implement.
// Works with Prometheus, StatsD, DataDog, etc.
type MetricsCollector interface {
	// RecordQuery is called after every statement; success is false when the
	// statement returned an error.
	RecordQuery(query string, duration time.Duration, success bool)
}

// NewMetricsHook returns a Hook delegating to a MetricsCollector.
func NewMetricsHook(collector MetricsCollector) Hook {
	return &metricsHook{c: collector}
}

type metricsHook struct{ c MetricsCollector }

func (h *metricsHook) BeforeQuery(_ context.Context, _ string, _ []any) {}
func (h *metricsHook) AfterQuery(_ context.Context, query string, _ []any, d time.Duration, err error) {
	h.c.RecordQuery(query, d, err == nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tracing hook
// ─────────────────────────────────────────────────────────────────────────────

// Tracer is the surface a tracing backend must implement.
// Works with OpenTelemetry, Jaeger, DataDog APM, etc.
type Tracer interface {
	// StartSpan runs before the query; the returned context must carry the
	// span so EndSpan can finish it.
	StartSpan(ctx context.Context, query string) context.Context
	// EndSpan runs after the query completes.
	EndSpan(ctx context.Context, err error)
}

// NewTracingHook returns a Hook wrapping a Tracer.
func NewTracingHook(t Tracer) Hook { return &tracingHook{t: t} }

type tracingHook struct{ t Tracer }

func (h *tracingHook) BeforeQuery(_ context.Context, _ string, _ []any) {}
func (h *tracingHook) AfterQuery(ctx context.Context, query string, _ []any, _ time.Duration, err error) {
	spanCtx := h.t.StartSpan(ctx, query)
	h.t.EndSpan(spanCtx, err)
}

package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"chatguard/internal/platform/logger"
)

// Tracer logs statements through zerolog
// failed and slow statements always log, the rest only with All set
type Tracer struct {
	Log  logger.Logger
	Slow time.Duration
	All  bool

	now func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer tags log lines with component=pg
func NewTracer(l logger.Logger, slow time.Duration, all bool) *Tracer {
	return &Tracer{
		Log:  l.With().Str("component", "pg").Logger(),
		Slow: slow,
		All:  all,
		now:  time.Now,
	}
}

type traceKey struct{}

type traced struct {
	sql   string
	args  []any
	start time.Time
}

// TraceQueryStart remembers the statement on ctx for TraceQueryEnd
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traced{sql: data.SQL, args: data.Args, start: t.clock()})
}

// TraceQueryEnd writes one "pg query" line
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	q, ok := ctx.Value(traceKey{}).(traced)
	if !ok {
		return
	}
	elapsed := t.clock().Sub(q.start)
	slow := t.Slow > 0 && elapsed >= t.Slow
	if !t.All && !slow && data.Err == nil {
		return
	}

	evt := t.Log.Debug()
	switch {
	case data.Err != nil:
		evt = t.Log.Error().Err(data.Err)
	case slow:
		evt = t.Log.Warn()
	}
	evt.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Bool("slow", slow).
		Str("sql", compact(q.sql)).
		Int("args", len(q.args)).
		Int64("rows", data.CommandTag.RowsAffected()).
		Msg("pg query")
}

func (t *Tracer) clock() time.Time {
	if t.now == nil {
		return time.Now()
	}
	return t.now()
}

// compact folds whitespace runs so multi line sql stays on one log line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

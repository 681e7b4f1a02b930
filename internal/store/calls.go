package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const callsTable = "llm_calls"

// Call is one recorded request to a generation provider.
type Call struct {
	ID           int
	Timestamp    time.Time
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	LessonID     string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// QueryOpts filters call listings.
type QueryOpts struct {
	Limit   int    // max results, 0 = unlimited
	Purpose string // exact match when set
	Since   time.Time
}

// Usage aggregates calls sharing a purpose or a model.
type Usage struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// CallLog records and reads generation calls.
type CallLog interface {
	// Append stores a call. Timestamp defaults to now when zero.
	Append(ctx context.Context, c Call) error

	// Recent returns calls newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Call, error)

	// Get returns a call by id, or nil if it does not exist.
	Get(ctx context.Context, id int) (*Call, error)

	// UsageByPurpose aggregates calls per purpose.
	UsageByPurpose(ctx context.Context) ([]Usage, error)

	// UsageByModel aggregates calls per model.
	UsageByModel(ctx context.Context) ([]Usage, error)

	// Prune deletes calls recorded before cutoff and reports how many
	// were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// NopCallLog discards appends and returns empty reads. Used when the
// database cannot be opened.
type NopCallLog struct{}

func (NopCallLog) Append(context.Context, Call) error                { return nil }
func (NopCallLog) Recent(context.Context, QueryOpts) ([]Call, error) { return nil, nil }
func (NopCallLog) Get(context.Context, int) (*Call, error)           { return nil, nil }
func (NopCallLog) UsageByPurpose(context.Context) ([]Usage, error)   { return nil, nil }
func (NopCallLog) UsageByModel(context.Context) ([]Usage, error)     { return nil, nil }
func (NopCallLog) Prune(context.Context, time.Time) (int64, error)   { return 0, nil }

type callLog struct {
	drv *entsql.Driver
}

// callRow mirrors the llm_calls columns for scanning.
type callRow struct {
	ID           int    `sql:"id"`
	CreatedAt    int64  `sql:"created_at"`
	SessionID    string `sql:"session_id"`
	Provider     string `sql:"provider"`
	Model        string `sql:"model"`
	Purpose      string `sql:"purpose"`
	LessonID     string `sql:"lesson_id"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	LatencyMs    int64  `sql:"latency_ms"`
	Success      bool   `sql:"success"`
	ErrorMessage string `sql:"error_message"`
	RequestBody  string `sql:"request_body"`
	ResponseBody string `sql:"response_body"`
}

var callColumns = []string{
	"id", "created_at", "session_id", "provider", "model", "purpose", "lesson_id",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r callRow) toCall() Call {
	return Call{
		ID:           r.ID,
		Timestamp:    time.UnixMilli(r.CreatedAt),
		SessionID:    r.SessionID,
		Provider:     r.Provider,
		Model:        r.Model,
		Purpose:      r.Purpose,
		LessonID:     r.LessonID,
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
		LatencyMs:    r.LatencyMs,
		Success:      r.Success,
		ErrorMessage: r.ErrorMessage,
		RequestBody:  r.RequestBody,
		ResponseBody: r.ResponseBody,
	}
}

func (l *callLog) Append(ctx context.Context, c Call) error {
	ts := c.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(callsTable).
		Columns(callColumns[1:]...).
		Values(
			ts.UnixMilli(), c.SessionID, c.Provider, c.Model, c.Purpose, c.LessonID,
			c.InputTokens, c.OutputTokens, c.LatencyMs, c.Success,
			c.ErrorMessage, c.RequestBody, c.ResponseBody,
		).
		Query()

	if err := l.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert call: %w", err)
	}
	return nil
}

func (l *callLog) Recent(ctx context.Context, opts QueryOpts) ([]Call, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(callColumns...).
		From(entsql.Table(callsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.Since.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.Since.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := l.selectCalls(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	return rows, nil
}

func (l *callLog) Get(ctx context.Context, id int) (*Call, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(callColumns...).
		From(entsql.Table(callsTable)).
		Where(entsql.EQ("id", id))

	calls, err := l.selectCalls(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get call %d: %w", id, err)
	}
	if len(calls) == 0 {
		return nil, nil
	}
	return &calls[0], nil
}

func (l *callLog) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(callsTable).
		Where(entsql.LT("created_at", cutoff.UnixMilli())).
		Query()

	var res sql.Result
	if err := l.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("prune calls: %w", err)
	}
	return res.RowsAffected()
}

func (l *callLog) selectCalls(ctx context.Context, sel *entsql.Selector) ([]Call, error) {
	query, args := sel.Query()

	var rows entsql.Rows
	if err := l.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var scanned []callRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, err
	}

	calls := make([]Call, len(scanned))
	for i, r := range scanned {
		calls[i] = r.toCall()
	}
	return calls, nil
}

// usageRow is one aggregate row.
type usageRow struct {
	Key          string  `sql:"key"`
	Calls        int     `sql:"calls"`
	Failures     int     `sql:"failures"`
	InputTokens  int     `sql:"input_tokens"`
	OutputTokens int     `sql:"output_tokens"`
	AvgLatency   float64 `sql:"avg_latency"`
}

func (l *callLog) UsageByPurpose(ctx context.Context) ([]Usage, error) {
	return l.usageBy(ctx, "purpose")
}

func (l *callLog) UsageByModel(ctx context.Context) ([]Usage, error) {
	return l.usageBy(ctx, "model")
}

func (l *callLog) usageBy(ctx context.Context, column string) ([]Usage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.As(column, "key"),
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As("SUM(CASE WHEN success THEN 0 ELSE 1 END)", "failures"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(callsTable)).
		GroupBy(column).
		OrderBy(entsql.Desc("calls")).
		Query()

	var rows entsql.Rows
	if err := l.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	defer rows.Close()

	var scanned []usageRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan usage by %s: %w", column, err)
	}

	out := make([]Usage, len(scanned))
	for i, r := range scanned {
		out[i] = Usage{
			Key:          r.Key,
			Calls:        r.Calls,
			Failures:     r.Failures,
			InputTokens:  r.InputTokens,
			OutputTokens: r.OutputTokens,
			AvgLatencyMs: int64(r.AvgLatency),
		}
	}
	return out, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const completionTable = "completion_events"

var completionColumns = []string{
	"sequence", "timestamp", "example_id", "role_id",
	"situation_id", "title", "reflection", "completed_at",
}

// completionRepo implements CompletionRepo with the ent SQL builder and the
// global sequence counter.
type completionRepo struct {
	drv *entsql.Driver
	seq *sequence
}

func (r *completionRepo) AppendCompletion(ctx context.Context, rec CompletionRecord) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(completionTable).
		Columns(completionColumns...).
		Values(
			seqNum, rec.Timestamp.UnixMilli(), rec.ExampleID, rec.RoleID,
			rec.SituationID, rec.Title, rec.Reflection, rec.CompletedAt.UnixMilli(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save completion event: %w", err)
	}
	return seqNum, nil
}

func (r *completionRepo) ListCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(completionColumns...).
		From(entsql.Table(completionTable)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)
	if opts.RoleID != "" {
		sel.Where(entsql.EQ("role_id", opts.RoleID))
	}
	return r.query(ctx, sel)
}

func (r *completionRepo) GetCompletion(ctx context.Context, seq int64) (*CompletionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(completionColumns...).
		From(entsql.Table(completionTable)).
		Where(entsql.EQ("sequence", seq)).
		Limit(1)
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *completionRepo) CountByRole(ctx context.Context) ([]RoleCount, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("role_id", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(completionTable)).
		GroupBy("role_id").
		OrderBy("role_id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}
	defer rows.Close()

	var out []RoleCount
	for rows.Next() {
		var rc RoleCount
		if err := rows.Scan(&rc.RoleID, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *completionRepo) Clear(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(completionTable).Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear completions: %w", err)
	}
	return res.RowsAffected()
}

func (r *completionRepo) query(ctx context.Context, sel *entsql.Selector) ([]CompletionRecord, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var out []CompletionRecord
	for rows.Next() {
		var rec CompletionRecord
		var ts, completedAtMs int64
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.ExampleID, &rec.RoleID,
			&rec.SituationID, &rec.Title, &rec.Reflection, &completedAtMs,
		); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.CompletedAt = time.UnixMilli(completedAtMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// applyQueryOpts adds the shared sequence, time and limit filters.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

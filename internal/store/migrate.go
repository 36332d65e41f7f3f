package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Timestamps are unix milliseconds.
var (
	completionEventsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "example_id", Type: field.TypeString},
		{Name: "role_id", Type: field.TypeString},
		{Name: "situation_id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "reflection", Type: field.TypeString},
		{Name: "completed_at", Type: field.TypeInt64},
	}
	completionEventsTable = &schema.Table{
		Name:       "completion_events",
		Columns:    completionEventsColumns,
		PrimaryKey: []*schema.Column{completionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "completion_events_role",
				Unique:  false,
				Columns: []*schema.Column{completionEventsColumns[3]},
			},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llm_request_events_purpose",
				Unique:  false,
				Columns: []*schema.Column{llmRequestEventsColumns[5]},
			},
		},
	}

	tables = []*schema.Table{
		completionEventsTable,
		llmRequestEventsTable,
	}
)

// The single-row counter behind sequence.Next has no ent table form.
var sequenceDDL = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range sequenceDDL {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("schema migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

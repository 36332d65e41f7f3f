package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.Driver())
	assert.NotNil(t, s.DB())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if !assert.NoError(t, err, "PRAGMA %s", tt.pragma) {
			continue
		}
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_FileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolwijzer.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CompletionRepo().AppendCompletion(context.Background(), CompletionRecord{RoleID: "a", SituationID: "s"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	recs, err := s.CompletionRepo().ListCompletions(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestCompletion_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.CompletionRepo()
	ctx := context.Background()

	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	for _, sit := range []string{"groepsproject", "stage-probleem"} {
		_, err := repo.AppendCompletion(ctx, CompletionRecord{
			ExampleID:   "id-" + sit,
			RoleID:      "aanpakker",
			SituationID: sit,
			Title:       sit,
			Reflection:  "Learned X",
			CompletedAt: at,
		})
		require.NoError(t, err)
	}
	_, err := repo.AppendCompletion(ctx, CompletionRecord{RoleID: "ziener", SituationID: "zelfkennis", CompletedAt: at})
	require.NoError(t, err)

	all, err := repo.ListCompletions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "zelfkennis", all[0].SituationID, "newest first")
	assert.True(t, all[0].Sequence > all[1].Sequence)
	assert.True(t, all[2].CompletedAt.Equal(at))
	assert.Equal(t, "Learned X", all[2].Reflection)

	filtered, err := repo.ListCompletions(ctx, QueryOpts{RoleID: "aanpakker", Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "stage-probleem", filtered[0].SituationID)

	after, err := repo.ListCompletions(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestCompletion_GetAndCount(t *testing.T) {
	s := openTestStore(t)
	repo := s.CompletionRepo()
	ctx := context.Background()

	seq, err := repo.AppendCompletion(ctx, CompletionRecord{RoleID: "empathicus", SituationID: "conflict-medestudent", Title: "Conflict"})
	require.NoError(t, err)
	_, err = repo.AppendCompletion(ctx, CompletionRecord{RoleID: "empathicus", SituationID: "conflict-medestudent"})
	require.NoError(t, err)
	_, err = repo.AppendCompletion(ctx, CompletionRecord{RoleID: "aanpakker", SituationID: "groepsproject"})
	require.NoError(t, err)

	rec, err := repo.GetCompletion(ctx, seq)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Conflict", rec.Title)

	missing, err := repo.GetCompletion(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, []RoleCount{{RoleID: "aanpakker", Count: 1}, {RoleID: "empathicus", Count: 2}}, counts)
}

func TestCompletion_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.CompletionRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.AppendCompletion(ctx, CompletionRecord{RoleID: "a", SituationID: "s"})
		require.NoError(t, err)
	}
	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	recs, err := repo.ListCompletions(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "coach",
		InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"summary":"ok"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "coach",
		InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success, "newest first")
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"summary":"ok"}`, e.ResponseBody)
	assert.True(t, e.Success)

	failed, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "rate limited", failed[0].ErrorMessage)

	other, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "review"})
	require.NoError(t, err)
	assert.Empty(t, other)

	none, err := repo.GetLLMEvent(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, none)

	usage, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, "coach", usage[0].Purpose)
	assert.Equal(t, 2, usage[0].Calls)
	assert.Equal(t, 150, usage[0].InputTokens)
	assert.Equal(t, 50, usage[0].OutputTokens)
	assert.EqualValues(t, 200, usage[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "claude-haiku-4-5", byModel[0].Model)

	n, err := repo.ClearLLMEvents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("ROLWIJZER_DB", p)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROLWIJZER_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rolwijzer", "rolwijzer.db"), got)
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("/tmp/r.db")
	assert.True(t, strings.HasPrefix(got, "/tmp/r.db?_pragma=journal_mode(WAL)&"), got)
	assert.Equal(t, len(pragmas), strings.Count(got, "_pragma="))

	got = withPragmas("file:x?mode=memory")
	assert.True(t, strings.HasPrefix(got, "file:x?mode=memory&_pragma="), got)
	assert.Equal(t, 1, strings.Count(got, "?"))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A second run against the existing schema is a no-op.
	require.NoError(t, migrate(ctx, s.Driver()))

	for _, name := range []string{
		"global_sequence",
		"completion_events",
		"llm_request_events",
		"completion_events_role",
		"llm_request_events_purpose",
	} {
		var n int
		err := s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = ?`, name).Scan(&n)
		require.NoError(t, err, name)
		assert.Equal(t, 1, n, name)
	}

	var unique int
	err := s.DB().QueryRow(`SELECT COUNT(*) FROM pragma_index_list('llm_request_events') WHERE "unique" = 1 AND origin != 'pk'`).Scan(&unique)
	require.NoError(t, err)
	assert.Equal(t, 1, unique, "llm_request_events.sequence unique index")
}

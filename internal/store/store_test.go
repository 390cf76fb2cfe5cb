package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/constdep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(runID string) *constdep.Report {
	return &constdep.Report{
		RunID:   runID,
		Unit:    "shapes",
		Ordered: []string{"a", "b"},
		Cycles: []constdep.CycleReport{
			{Members: []string{"p", "q"}, Message: "[E210] circular constant reference: p, q"},
		},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteAndGetReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleReport("run-1")
	require.NoError(t, s.WriteReport(ctx, want))

	got, err := s.GetReport(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestGetUnknownRunReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetReport(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteReportIdempotentOnRunID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := sampleReport("run-1")
	require.NoError(t, s.WriteReport(ctx, first))

	// Replaying the same run ID must not overwrite the stored report.
	replay := sampleReport("run-1")
	replay.Ordered = []string{"changed"}
	require.NoError(t, s.WriteReport(ctx, replay))

	got, err := s.GetReport(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, first.Ordered, got.Ordered)

	rows, err := s.ListRows(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListRowsFiltersByUnit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := sampleReport("run-a")
	b := sampleReport("run-b")
	b.Unit = "colors"
	require.NoError(t, s.WriteReport(ctx, a))
	require.NoError(t, s.WriteReport(ctx, b))

	all, err := s.ListRows(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shapes, err := s.ListRows(ctx, "shapes")
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "run-a", shapes[0].RunID)
	assert.Equal(t, 2, shapes[0].OrderedCount)
	assert.Equal(t, 1, shapes[0].CycleCount)
	assert.NotEmpty(t, shapes[0].CreatedAt)
}

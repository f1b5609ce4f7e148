package metastore

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	files []FileStatus
	err   error
	calls atomic.Int32
}

func (f *fakeLister) FileStatusesForTable(_ context.Context, _ *Database, _ *Table) ([]FileStatus, error) {
	f.calls.Add(1)
	return f.files, f.err
}

func (f *fakeLister) FileStatusesForPartition(_ context.Context, _ *Partition) ([]FileStatus, error) {
	f.calls.Add(1)
	return f.files, f.err
}

func TestContainsAllFastStats(t *testing.T) {
	assert.True(t, ContainsAllFastStats(map[string]string{NumFiles: "1", TotalSize: "2"}))
	assert.False(t, ContainsAllFastStats(map[string]string{NumFiles: "1"}))
	assert.False(t, ContainsAllFastStats(nil))
}

func TestShouldCalcTableStats(t *testing.T) {
	managed := &Table{TableType: ManagedTable, Parameters: map[string]string{}}
	assert.True(t, ShouldCalcTableStats(true, managed))
	assert.False(t, ShouldCalcTableStats(false, managed))
	assert.False(t, ShouldCalcTableStats(true, nil))
	assert.False(t, ShouldCalcTableStats(true, &Table{TableType: VirtualView, Parameters: map[string]string{}}))
	assert.False(t, ShouldCalcTableStats(true, &Table{TableType: StaticTableLink, Parameters: map[string]string{}}))
	assert.False(t, ShouldCalcTableStats(true, &Table{TableType: ManagedTable}))
	assert.False(t, ShouldCalcTableStats(true, &Table{TableType: ManagedTable, Parameters: map[string]string{ExternalKey: "TRUE"}}))
	assert.False(t, ShouldCalcTableStats(true, &Table{TableType: ManagedTable, Parameters: map[string]string{MetaTableStorage: "x"}}))
	assert.False(t, ShouldCalcTableStats(true, &Table{Parameters: map[string]string{}}))
}

func TestRequireCalcStats(t *testing.T) {
	withStats := func(files, size string) *Partition {
		return &Partition{Parameters: map[string]string{NumFiles: files, TotalSize: size}}
	}
	assert.True(t, RequireCalcStats(nil, nil))
	assert.True(t, RequireCalcStats(nil, &Partition{Parameters: map[string]string{NumFiles: "1"}}))
	assert.False(t, RequireCalcStats(nil, withStats("1", "10")))
	assert.False(t, RequireCalcStats(withStats("1", "10"), withStats("1", "10")))
	assert.True(t, RequireCalcStats(withStats("1", "10"), withStats("2", "10")))
	assert.True(t, RequireCalcStats(withStats("1", "10"), withStats("1", "11")))
	assert.True(t, RequireCalcStats(withStats("x", "10"), withStats("1", "10")))
	assert.False(t, RequireCalcStats(&Partition{Parameters: map[string]string{}}, withStats("1", "10")))
}

func TestUpdateTableStatsFast(t *testing.T) {
	ctx := t.Context()
	lister := &fakeLister{files: []FileStatus{{Path: "a", Size: 10}, {Path: "b", Size: 32}}}

	tbl := &Table{TableName: "t", Parameters: map[string]string{RowCount: "5"}}
	updated, err := UpdateTableStatsFast(ctx, slog.Default(), lister, &Database{Name: "d"}, tbl, false, false)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, "2", tbl.Parameters[NumFiles])
	assert.Equal(t, "42", tbl.Parameters[TotalSize])
	assert.Equal(t, "5", tbl.Parameters[RowCount])

	// already present: nothing to do
	updated, err = UpdateTableStatsFast(ctx, slog.Default(), lister, &Database{Name: "d"}, tbl, false, false)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.EqualValues(t, 1, lister.calls.Load())

	// forced
	lister.files = nil
	updated, err = UpdateTableStatsFast(ctx, slog.Default(), lister, &Database{Name: "d"}, tbl, false, true)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, "0", tbl.Parameters[NumFiles])

	// a freshly made directory is not listed
	fresh := &Table{TableName: "fresh"}
	updated, err = UpdateTableStatsFast(ctx, slog.Default(), lister, &Database{Name: "d"}, fresh, true, false)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NotNil(t, fresh.Parameters)
	assert.Empty(t, fresh.Parameters)
	assert.EqualValues(t, 2, lister.calls.Load())
}

func TestUpdateTableStatsFastListingError(t *testing.T) {
	lister := &fakeLister{err: errors.New("namenode unavailable")}
	tbl := &Table{TableName: "t"}
	updated, err := UpdateTableStatsFast(t.Context(), slog.Default(), lister, &Database{Name: "d"}, tbl, false, false)
	assert.False(t, updated)
	assert.ErrorContains(t, err, "namenode unavailable")
	assert.Nil(t, tbl.Parameters)
}

func TestUpdatePartitionsStatsFast(t *testing.T) {
	lister := &fakeLister{files: []FileStatus{{Path: "a", Size: 7}}}
	parts := []*Partition{
		{TableName: "t", Values: []string{"1"}},
		{TableName: "t", Values: []string{"2"}, Parameters: map[string]string{NumFiles: "1", TotalSize: "7"}},
		{TableName: "t", Values: []string{"3"}},
	}
	n, err := UpdatePartitionsStatsFast(t.Context(), slog.Default(), lister, parts, false, false, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, p := range parts {
		assert.Equal(t, "1", p.Parameters[NumFiles])
		assert.Equal(t, "7", p.Parameters[TotalSize])
	}

	lister.err = errors.New("boom")
	_, err = UpdatePartitionsStatsFast(t.Context(), slog.Default(), lister, []*Partition{{TableName: "t"}}, false, true, 0)
	assert.ErrorContains(t, err, "boom")
}

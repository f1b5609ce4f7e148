package metastore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// FileStatus describes one file below a table or partition location.
type FileStatus struct {
	Path  string
	Size  int64
	IsDir bool
}

// FileLister lists the data files of tables and partitions.
type FileLister interface {
	FileStatusesForTable(ctx context.Context, db *Database, t *Table) ([]FileStatus, error)
	FileStatusesForPartition(ctx context.Context, p *Partition) ([]FileStatus, error)
}

// ContainsAllFastStats reports whether params has a value for every fast
// statistic.
func ContainsAllFastStats(params map[string]string) bool {
	for _, stat := range FastStats {
		if _, ok := params[stat]; !ok {
			return false
		}
	}
	return true
}

// ShouldCalcTableStats reports whether statistics should be gathered for t
// when it is created or altered. Views, links, external and non-native
// tables never get statistics.
func ShouldCalcTableStats(autoGather bool, t *Table) bool {
	return autoGather && t != nil && !IsView(t) &&
		t.TableType != "" && !t.TableType.IsTableLink() &&
		t.Parameters != nil && !IsNonNative(t) &&
		!IsViewLink(t) && !IsExternal(t)
}

// RequireCalcStats reports whether the statistics of newPart have to be
// recomputed: either they are missing, or they disagree with oldPart.
func RequireCalcStats(oldPart, newPart *Partition) bool {
	if newPart == nil || newPart.Parameters == nil || !fastStatsExist(newPart.Parameters) {
		return true
	}
	if oldPart == nil || oldPart.Parameters == nil {
		return false
	}
	for _, stat := range FastStats {
		oldVal, ok := oldPart.Parameters[stat]
		if !ok {
			continue
		}
		o, err := strconv.ParseInt(oldVal, 10, 64)
		if err != nil {
			return true
		}
		n, err := strconv.ParseInt(newPart.Parameters[stat], 10, 64)
		if err != nil || o != n {
			return true
		}
	}
	return false
}

func fastStatsExist(params map[string]string) bool {
	_, files := params[NumFiles]
	_, size := params[TotalSize]
	return files && size
}

// UpdateTableStatsFast fills in the number of files and the total size of an
// unpartitioned table when they are missing, or always when force is set.
// When madeDir is set the table directory was just created and is assumed
// to be empty, so only an empty parameter map is installed. It reports
// whether the table parameters were updated.
func UpdateTableStatsFast(ctx context.Context, logger *slog.Logger, lister FileLister, db *Database, t *Table, madeDir, force bool) (bool, error) {
	params := t.Parameters
	if !force && params != nil && ContainsAllFastStats(params) {
		return false, nil
	}
	if params == nil {
		params = map[string]string{}
	}
	if !madeDir {
		files, err := lister.FileStatusesForTable(ctx, db, t)
		if err != nil {
			return false, fmt.Errorf("failed to retrieve file information for table %s: %w", t.TableName, err)
		}
		logger.Info("updating table stats fast", "table", t.TableName)
		size := setFastStats(params, files)
		logger.Info("updated total size", "table", t.TableName, "size", size)
		warnSuspectStats(logger, params, "table", t.TableName)
	}
	t.Parameters = params
	return true, nil
}

// UpdatePartitionStatsFast is UpdateTableStatsFast for a partition.
func UpdatePartitionStatsFast(ctx context.Context, logger *slog.Logger, lister FileLister, p *Partition, madeDir, force bool) (bool, error) {
	params := p.Parameters
	if !force && params != nil && ContainsAllFastStats(params) {
		return false, nil
	}
	if params == nil {
		params = map[string]string{}
	}
	if !madeDir {
		files, err := lister.FileStatusesForPartition(ctx, p)
		if err != nil {
			return false, fmt.Errorf("failed to retrieve file information for table %s and partition values %v: %w", p.TableName, p.Values, err)
		}
		logger.Info("updating partition stats fast", "table", p.TableName, "values", p.Values)
		size := setFastStats(params, files)
		logger.Info("updated total size", "table", p.TableName, "values", p.Values, "size", size)
		warnSuspectStats(logger, params, "table", p.TableName, "values", p.Values)
	}
	p.Parameters = params
	return true, nil
}

// UpdatePartitionsStatsFast runs UpdatePartitionStatsFast for every partition
// with at most concurrency listings in flight, and returns how many
// partitions were updated. Each partition is only touched by one goroutine.
func UpdatePartitionsStatsFast(ctx context.Context, logger *slog.Logger, lister FileLister, parts []*Partition, madeDir, force bool, concurrency int) (int, error) {
	updated := make([]bool, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, p := range parts {
		g.Go(func() error {
			ok, err := UpdatePartitionStatsFast(gctx, logger, lister, p, madeDir, force)
			updated[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	n := 0
	for _, ok := range updated {
		if ok {
			n++
		}
	}
	return n, nil
}

func setFastStats(params map[string]string, files []FileStatus) int64 {
	var size int64
	for _, f := range files {
		size += f.Size
	}
	params[NumFiles] = strconv.Itoa(len(files))
	params[TotalSize] = strconv.FormatInt(size, 10)
	return size
}

// warnSuspectStats logs row count and raw size, which are only accurate if
// a stats task ran right before this call.
func warnSuspectStats(logger *slog.Logger, params map[string]string, args ...any) {
	rows, hasRows := params[RowCount]
	raw, hasRaw := params[RawDataSize]
	if !hasRows && !hasRaw {
		return
	}
	logger.Info("row count and raw data size may be stale", append(args, RowCount, rows, RawDataSize, raw)...)
}

// Package warehouse manages the directories that hold table and partition
// data: where they live, creating them, dropping them (optionally into the
// trash) and listing the files inside them.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/block/hivemeta/pkg/metastore"
)

const (
	// TrashRoot is where dropped directories are moved when the trash is
	// used. A dropped /a/b/c becomes TrashRoot + "/a/b/c.N".
	TrashRoot = "/Trash/Current"
	// MaxTrashAttempts bounds the number of ".N" suffixes tried.
	MaxTrashAttempts = 50
)

type Warehouse struct {
	fs     FileSystem
	root   string
	logger *slog.Logger
}

var _ metastore.FileLister = (*Warehouse)(nil)

// New returns a warehouse rooted at root on fs.
func New(fs FileSystem, root string, logger *slog.Logger) *Warehouse {
	return &Warehouse{
		fs:     fs,
		root:   path.Clean("/" + LocationPath(root)),
		logger: logger,
	}
}

func (w *Warehouse) Root() string {
	return w.root
}

// DefaultDatabasePath returns the directory a database gets when it has no
// location of its own. The default database lives at the root.
func (w *Warehouse) DefaultDatabasePath(name string) string {
	if strings.EqualFold(name, metastore.DefaultDatabase) {
		return w.root
	}
	return path.Join(w.root, strings.ToLower(name)+metastore.DatabaseDirSuffix)
}

func (w *Warehouse) DatabasePath(db *metastore.Database) string {
	if db.LocationURI != "" && !strings.EqualFold(db.Name, metastore.DefaultDatabase) {
		return LocationPath(db.LocationURI)
	}
	return w.DefaultDatabasePath(db.Name)
}

func (w *Warehouse) TablePath(db *metastore.Database, tableName string) string {
	return path.Join(w.DatabasePath(db), strings.ToLower(tableName))
}

// TableLocation returns the storage location of t, or its default path in
// db when it has none.
func (w *Warehouse) TableLocation(db *metastore.Database, t *metastore.Table) string {
	if t.Sd != nil && t.Sd.Location != "" {
		return LocationPath(t.Sd.Location)
	}
	return w.TablePath(db, t.TableName)
}

// MakeDir creates p and its parents. It reports false when p already
// existed.
func (w *Warehouse) MakeDir(ctx context.Context, p string) (bool, error) {
	exists, err := w.fs.Exists(ctx, p)
	if err != nil {
		return false, &metastore.MetaError{Message: "unable to check directory " + p, Err: err}
	}
	if exists {
		return false, nil
	}
	if err := w.fs.MkdirAll(ctx, p); err != nil {
		return false, &metastore.MetaError{Message: "unable to create directory " + p, Err: err}
	}
	return true, nil
}

// DeleteDir drops the data directory p. Missing directories are ignored.
// With useTrash set the directory is renamed into the trash instead of
// removed, trying suffixes .0 to .49 until one is free.
func (w *Warehouse) DeleteDir(ctx context.Context, p string, useTrash bool) error {
	err := w.deleteDir(ctx, p, useTrash)
	if err != nil {
		w.logger.Error("got error trying to delete data dir", "path", p, "error", err)
	}
	return err
}

func (w *Warehouse) deleteDir(ctx context.Context, p string, useTrash bool) error {
	exists, err := w.fs.Exists(ctx, p)
	if err != nil {
		return &metastore.MetaError{Err: err}
	}
	if !exists {
		w.logger.Warn("drop data called on table/partition with no directory", "path", p)
		return nil
	}
	if !useTrash {
		if err := w.fs.RemoveAll(ctx, p); err != nil {
			return &metastore.MetaError{Err: err}
		}
		return nil
	}

	trashDir := TrashRoot + path.Dir(p)
	if _, err := w.MakeDir(ctx, trashDir); err != nil {
		return err
	}
	for i := range MaxTrashAttempts {
		target := fmt.Sprintf("%s%s.%d", TrashRoot, p, i)
		taken, err := w.fs.Exists(ctx, target)
		if err != nil {
			return &metastore.MetaError{Err: err}
		}
		if taken {
			continue
		}
		if err := w.fs.Rename(ctx, p, target); err != nil {
			w.logger.Warn("rename to trash failed", "path", p, "target", target, "error", err)
			continue
		}
		w.logger.Info("moved data dir to trash", "path", p, "target", target)
		return nil
	}
	return &metastore.MetaError{Message: "Rename failed due to maxing out retries"}
}

// FileStatusesForTable lists the data files below the location of t.
func (w *Warehouse) FileStatusesForTable(ctx context.Context, db *metastore.Database, t *metastore.Table) ([]metastore.FileStatus, error) {
	return w.listFiles(ctx, w.TableLocation(db, t))
}

// FileStatusesForPartition lists the data files below the location of p.
func (w *Warehouse) FileStatusesForPartition(ctx context.Context, p *metastore.Partition) ([]metastore.FileStatus, error) {
	if p.Sd == nil || p.Sd.Location == "" {
		return nil, &metastore.MetaError{Message: fmt.Sprintf("partition %v of table %s has no location", p.Values, p.TableName)}
	}
	return w.listFiles(ctx, LocationPath(p.Sd.Location))
}

// listFiles returns every file below dir, skipping hidden files and
// directories (names starting with '_' or '.'). A missing dir has no files.
func (w *Warehouse) listFiles(ctx context.Context, dir string) ([]metastore.FileStatus, error) {
	exists, err := w.fs.Exists(ctx, dir)
	if err != nil || !exists {
		return nil, err
	}
	var files []metastore.FileStatus
	pending := []string{dir}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := pending[0]
		pending = pending[1:]
		children, err := w.fs.List(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", current, err)
		}
		for _, child := range children {
			if hidden(child.Path) {
				continue
			}
			if child.IsDir {
				pending = append(pending, child.Path)
				continue
			}
			files = append(files, child)
		}
	}
	return files, nil
}

func hidden(p string) bool {
	name := path.Base(p)
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// LocationPath returns the path part of a location such as
// "hdfs://namenode:8020/warehouse/t". Plain paths are returned unchanged.
func LocationPath(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return location
	}
	return u.Path
}

package warehouse

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/colinmarc/hdfs/v2"
	"github.com/spf13/afero"
)

// FileSystem is the set of filesystem operations the warehouse needs. Paths
// are absolute and slash separated.
type FileSystem interface {
	Exists(ctx context.Context, p string) (bool, error)
	MkdirAll(ctx context.Context, p string) error
	Rename(ctx context.Context, from, to string) error
	RemoveAll(ctx context.Context, p string) error
	// List returns the direct children of the directory p.
	List(ctx context.Context, p string) ([]metastore.FileStatus, error)
}

// HDFSConfig holds the namenode addresses and the user to connect as.
type HDFSConfig struct {
	Addresses []string
	User      string
}

// HDFS is a FileSystem backed by an HDFS cluster.
type HDFS struct {
	client *hdfs.Client
}

var _ FileSystem = (*HDFS)(nil)

// NewHDFS connects to the namenodes in cfg.
func NewHDFS(cfg HDFSConfig) (*HDFS, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("at least one namenode address is required")
	}
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: cfg.Addresses,
		User:      cfg.User,
	})
	if err != nil {
		return nil, err
	}
	return &HDFS{client: client}, nil
}

func (h *HDFS) Close() error {
	return h.client.Close()
}

func (h *HDFS) Exists(_ context.Context, p string) (bool, error) {
	_, err := h.client.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (h *HDFS) MkdirAll(_ context.Context, p string) error {
	return h.client.MkdirAll(p, 0o755)
}

func (h *HDFS) Rename(_ context.Context, from, to string) error {
	return h.client.Rename(from, to)
}

func (h *HDFS) RemoveAll(_ context.Context, p string) error {
	return h.client.RemoveAll(p)
}

func (h *HDFS) List(_ context.Context, p string) ([]metastore.FileStatus, error) {
	infos, err := h.client.ReadDir(p)
	if err != nil {
		return nil, err
	}
	return fileStatuses(p, infos), nil
}

// AferoFS is a FileSystem over an afero filesystem, normally the local disk
// rooted at a directory.
type AferoFS struct {
	fs afero.Fs
}

var _ FileSystem = (*AferoFS)(nil)

// NewLocal returns a FileSystem that maps warehouse paths below root on the
// local disk.
func NewLocal(root string) *AferoFS {
	return NewAferoFS(afero.NewBasePathFs(afero.NewOsFs(), root))
}

func NewAferoFS(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

func (a *AferoFS) Exists(_ context.Context, p string) (bool, error) {
	return afero.Exists(a.fs, p)
}

func (a *AferoFS) MkdirAll(_ context.Context, p string) error {
	return a.fs.MkdirAll(p, 0o755)
}

func (a *AferoFS) Rename(_ context.Context, from, to string) error {
	return a.fs.Rename(from, to)
}

func (a *AferoFS) RemoveAll(_ context.Context, p string) error {
	return a.fs.RemoveAll(p)
}

func (a *AferoFS) List(_ context.Context, p string) ([]metastore.FileStatus, error) {
	infos, err := afero.ReadDir(a.fs, p)
	if err != nil {
		return nil, err
	}
	return fileStatuses(p, infos), nil
}

func fileStatuses(dir string, infos []os.FileInfo) []metastore.FileStatus {
	statuses := make([]metastore.FileStatus, 0, len(infos))
	for _, info := range infos {
		statuses = append(statuses, metastore.FileStatus{
			Path:  path.Join(dir, info.Name()),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
	}
	return statuses
}

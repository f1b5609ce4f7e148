// Package client is a small Thrift client for the Hive metastore service.
// It speaks the binary protocol over a buffered or framed socket and covers
// the calls that return table columns.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
)

const (
	DefaultPort           = 9083
	DefaultConnectTimeout = 20 * time.Second
	DefaultSocketTimeout  = 600 * time.Second

	bufferSize = 4096
)

// Config says where the metastore service listens and how to talk to it.
type Config struct {
	Host           string
	Port           int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
	// Framed selects the framed transport instead of the buffered one.
	Framed bool
}

// NewConfig returns a Config for host with default port and timeouts.
func NewConfig(host string) Config {
	return Config{
		Host:           host,
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
		SocketTimeout:  DefaultSocketTimeout,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Client is a connection to a metastore service. Calls are serialized; the
// client is safe for concurrent use.
type Client struct {
	sync.Mutex
	transport thrift.TTransport
	client    *thrift.TStandardClient
	logger    *slog.Logger
}

// New connects to the metastore described by cfg.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("metastore host is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conf := &thrift.TConfiguration{
		ConnectTimeout: cfg.ConnectTimeout,
		SocketTimeout:  cfg.SocketTimeout,
	}
	var transport thrift.TTransport = thrift.NewTSocketConf(cfg.Addr(), conf)
	if cfg.Framed {
		transport = thrift.NewTFramedTransportConf(transport, conf)
	} else {
		transport = thrift.NewTBufferedTransport(transport, bufferSize)
	}
	if err := transport.Open(); err != nil {
		return nil, fmt.Errorf("could not connect to metastore at %s: %w", cfg.Addr(), err)
	}
	logger.Info("connected to metastore", "addr", cfg.Addr(), "framed", cfg.Framed)

	proto := thrift.NewTBinaryProtocolConf(transport, conf)
	return &Client{
		transport: transport,
		client:    thrift.NewTStandardClient(proto, proto),
		logger:    logger,
	}, nil
}

func (c *Client) Close() error {
	return c.transport.Close()
}

// GetFields returns the columns of a table, without partition keys.
func (c *Client) GetFields(ctx context.Context, db, table string) (schema.Columns, error) {
	return c.fields(ctx, "get_fields", db, table)
}

// GetSchema returns the columns of a table followed by its partition keys.
func (c *Client) GetSchema(ctx context.Context, db, table string) (schema.Columns, error) {
	return c.fields(ctx, "get_schema", db, table)
}

func (c *Client) fields(ctx context.Context, method, db, table string) (schema.Columns, error) {
	c.Lock()
	defer c.Unlock()

	args := &tableArgs{method: method, DBName: db, TableName: table}
	result := &fieldsResult{method: method}
	if _, err := c.client.Call(ctx, method, args, result); err != nil {
		return nil, fmt.Errorf("%s %s.%s: %w", method, db, table, err)
	}
	switch {
	case result.O1 != nil:
		return nil, &metastore.MetaError{Message: result.O1.Message, Err: result.O1}
	case result.O2 != nil:
		return nil, &metastore.NoSuchObjectError{Message: result.O2.Message}
	case result.O3 != nil:
		return nil, &metastore.NoSuchObjectError{Message: result.O3.Message}
	case result.Success == nil:
		return nil, thrift.NewTApplicationException(thrift.MISSING_RESULT, method+" failed: unknown result")
	}

	cols := make(schema.Columns, 0, len(result.Success))
	for _, f := range result.Success {
		cols = append(cols, schema.Column{Name: f.Name, Type: f.Type, Comment: f.Comment})
	}
	c.logger.Debug("fetched columns", "method", method, "db", db, "table", table, "columns", len(cols))
	return cols, nil
}

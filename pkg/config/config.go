// Package config loads the optional ini file shared by the command line
// tools:
//
//	[client]
//	host = metastore-db.internal
//	port = 3306
//	user = hive
//	password = secret
//	database = metastore
//	tls-mode = REQUIRED
//	tls-ca = /etc/ssl/ca.pem
//
//	[metastore]
//	host = metastore.internal
//	port = 9083
//	connect-timeout = 20s
//	socket-timeout = 10m
//	framed = false
//
//	[hdfs]
//	namenodes = nn1:8020,nn2:8020
//	user = hive
//	warehouse = /user/hive/warehouse
//
//	[listeners]
//	names = log
package config

import (
	"time"

	"github.com/block/hivemeta/pkg/client"
	"github.com/block/hivemeta/pkg/metastoredb"
	"github.com/block/hivemeta/pkg/warehouse"
	"github.com/go-ini/ini"
)

const (
	defaultHost          = "127.0.0.1"
	defaultPort          = 3306
	defaultUsername      = "hive"
	defaultPassword      = ""
	defaultDatabase      = "metastore"
	defaultTLSMode       = "PREFERRED"
	defaultWarehouseRoot = "/user/hive/warehouse"
)

// Params holds the values loaded from an ini file. Getters provide defaults
// when the receiver is nil or a value is not defined.
type Params struct {
	host, database, user, tlsMode, tlsCA string
	password                             *string
	port                                 int

	metastoreHost  string
	metastorePort  int
	connectTimeout time.Duration
	socketTimeout  time.Duration
	framed         bool

	namenodes     []string
	hdfsUser      string
	warehouseRoot string

	listeners        string
	listenerSettings map[string]string
}

func (c *Params) GetHost() string {
	if c == nil || c.host == "" {
		return defaultHost
	}
	return c.host
}

func (c *Params) GetPort() int {
	if c == nil || c.port == 0 {
		return defaultPort
	}
	return c.port
}

func (c *Params) GetDatabase() string {
	if c == nil || c.database == "" {
		return defaultDatabase
	}
	return c.database
}

func (c *Params) GetUser() string {
	if c == nil || c.user == "" {
		return defaultUsername
	}
	return c.user
}

func (c *Params) GetPassword() string {
	if c == nil || c.password == nil {
		return defaultPassword
	}
	return *c.password
}

func (c *Params) GetTLSMode() string {
	if c == nil || c.tlsMode == "" {
		return defaultTLSMode
	}
	return c.tlsMode
}

// N.B. There is no default for tls-ca
func (c *Params) GetTLSCA() string {
	if c == nil {
		return ""
	}
	return c.tlsCA
}

// DBConfig returns the connection settings of the metastore backing
// database.
func (c *Params) DBConfig() *metastoredb.DBConfig {
	cfg := metastoredb.NewDBConfig()
	cfg.Host = c.GetHost()
	cfg.Port = c.GetPort()
	cfg.User = c.GetUser()
	cfg.Password = c.GetPassword()
	cfg.Database = c.GetDatabase()
	cfg.TLSMode = c.GetTLSMode()
	cfg.TLSCertificatePath = c.GetTLSCA()
	return cfg
}

// ClientConfig returns the settings of the metastore Thrift service.
func (c *Params) ClientConfig() client.Config {
	if c == nil {
		return client.NewConfig(defaultHost)
	}
	cfg := client.NewConfig(c.metastoreHost)
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if c.metastorePort != 0 {
		cfg.Port = c.metastorePort
	}
	if c.connectTimeout != 0 {
		cfg.ConnectTimeout = c.connectTimeout
	}
	if c.socketTimeout != 0 {
		cfg.SocketTimeout = c.socketTimeout
	}
	cfg.Framed = c.framed
	return cfg
}

func (c *Params) HDFSConfig() warehouse.HDFSConfig {
	if c == nil {
		return warehouse.HDFSConfig{}
	}
	return warehouse.HDFSConfig{Addresses: c.namenodes, User: c.hdfsUser}
}

func (c *Params) GetWarehouseRoot() string {
	if c == nil || c.warehouseRoot == "" {
		return defaultWarehouseRoot
	}
	return c.warehouseRoot
}

// GetListeners returns the comma separated listener names. There is no
// default.
func (c *Params) GetListeners() string {
	if c == nil {
		return ""
	}
	return c.listeners
}

// GetListenerSettings returns every key of the [listeners] section.
func (c *Params) GetListenerSettings() map[string]string {
	if c == nil || c.listenerSettings == nil {
		return map[string]string{}
	}
	return c.listenerSettings
}

// Load reads the ini file at path. An empty path yields empty Params.
func Load(path string) (*Params, error) {
	params := &Params{}
	if path == "" {
		return params, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	if f.HasSection("client") {
		s := f.Section("client")
		params.host = s.Key("host").String()
		params.database = s.Key("database").String()
		params.user = s.Key("user").String()
		params.tlsMode = s.Key("tls-mode").String()
		params.tlsCA = s.Key("tls-ca").String()
		params.port = s.Key("port").MustInt()

		if s.HasKey("password") {
			pw := s.Key("password").String()
			params.password = &pw
		}
	}

	if f.HasSection("metastore") {
		s := f.Section("metastore")
		params.metastoreHost = s.Key("host").String()
		params.metastorePort = s.Key("port").MustInt()
		params.connectTimeout = s.Key("connect-timeout").MustDuration()
		params.socketTimeout = s.Key("socket-timeout").MustDuration()
		params.framed = s.Key("framed").MustBool()
	}

	if f.HasSection("hdfs") {
		s := f.Section("hdfs")
		params.namenodes = s.Key("namenodes").Strings(",")
		params.hdfsUser = s.Key("user").String()
		params.warehouseRoot = s.Key("warehouse").String()
	}

	if f.HasSection("listeners") {
		s := f.Section("listeners")
		params.listeners = s.Key("names").String()
		params.listenerSettings = s.KeysHash()
	}

	return params, nil
}

// Package metastoredb reads table definitions straight from the relational
// database that backs a Hive metastore (the DBS, TBLS, SDS, COLUMNS_V2 and
// related tables).
package metastoredb

import (
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/block/hivemeta/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

const (
	customTLSConfigName = "hivemeta_custom"
	maxConnLifetime     = time.Minute * 3
)

var registerTLSLock sync.Mutex

type DBConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	MaxOpenConnections int
	// TLSMode is one of DISABLED, PREFERRED, REQUIRED or VERIFY_IDENTITY.
	TLSMode            string
	TLSCertificatePath string
}

func NewDBConfig() *DBConfig {
	return &DBConfig{
		Host:               "127.0.0.1",
		Port:               3306,
		User:               "hive",
		Database:           "metastore",
		MaxOpenConnections: 8,
		TLSMode:            "PREFERRED",
	}
}

// DSN returns the driver DSN for config. A custom certificate is registered
// with the driver on first use.
func DSN(config *DBConfig) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = config.Host + ":" + strconv.Itoa(config.Port)
	cfg.DBName = config.Database
	cfg.AllowNativePasswords = true
	cfg.Params = map[string]string{
		"transaction_isolation": `"read-committed"`,
	}

	tlsName, err := tlsConfigName(config)
	if err != nil {
		return "", err
	}
	cfg.TLSConfig = tlsName
	return cfg.FormatDSN(), nil
}

func tlsConfigName(config *DBConfig) (string, error) {
	if config.TLSCertificatePath != "" && config.TLSMode != "DISABLED" {
		if err := registerCustomTLS(config); err != nil {
			return "", err
		}
		return customTLSConfigName, nil
	}
	switch config.TLSMode {
	case "DISABLED":
		return "false", nil
	case "REQUIRED":
		return "skip-verify", nil
	case "VERIFY_IDENTITY":
		return "true", nil
	default:
		return "preferred", nil
	}
}

func registerCustomTLS(config *DBConfig) error {
	registerTLSLock.Lock()
	defer registerTLSLock.Unlock()

	certData, err := os.ReadFile(config.TLSCertificatePath)
	if err != nil {
		return fmt.Errorf("failed to read TLS certificate %s: %w", config.TLSCertificatePath, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(certData) {
		return fmt.Errorf("no certificates found in %s", config.TLSCertificatePath)
	}
	tlsConfig := &tls.Config{RootCAs: pool}
	// REQUIRED encrypts without verifying the server certificate.
	if config.TLSMode == "REQUIRED" || config.TLSMode == "PREFERRED" {
		tlsConfig.InsecureSkipVerify = true
	}
	return mysql.RegisterTLSConfig(customTLSConfigName, tlsConfig)
}

// Open is sql.Open with the DSN built from config. It pings the database
// before returning it.
func Open(config *DBConfig) (*sql.DB, error) {
	dsn, err := DSN(config)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		utils.CloseAndLog(db)
		return nil, err
	}
	db.SetMaxOpenConns(config.MaxOpenConnections)
	db.SetConnMaxLifetime(maxConnLifetime)
	return db, nil
}

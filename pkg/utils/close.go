package utils

import (
	"log/slog"
)

// Closer is implemented by the connections, clients and filesystems that
// get closed on the way out of a command.
type Closer interface {
	Close() error
}

// CloseAndLog closes a resource and logs any error on the default logger.
// Example: defer utils.CloseAndLog(db)
func CloseAndLog(closer Closer) {
	CloseAndLogTo(slog.Default(), closer)
}

// CloseAndLogTo is CloseAndLog with an explicit logger.
func CloseAndLogTo(logger *slog.Logger, closer Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Error("deferred close failed", "error", err)
	}
}

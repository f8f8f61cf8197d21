package db

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes that mean the session itself is gone.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeTooManyConnections = "53300"
	pgCodeAdminShutdown      = "57P01"
	pgCodeCrashShutdown      = "57P02"
	pgCodeCannotConnectNow   = "57P03"
	pgCodeDatabaseDropped    = "57P04"
	pgCodeInvalidCatalogName = "3D000"
)

var connectionErrorPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"conn closed",
	"failed to connect",
}

// IsConnectionError reports whether err means the database session is
// unusable, as opposed to a failure of one statement. A file that fails
// this way cannot be isolated: every later file would fail too.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isConnectionPgError(pgErr)
	}

	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range connectionErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func isConnectionPgError(pgErr *pgconn.PgError) bool {
	if strings.HasPrefix(pgErr.Code, "08") {
		return true
	}
	switch pgErr.Code {
	case pgCodeTooManyConnections,
		pgCodeAdminShutdown,
		pgCodeCrashShutdown,
		pgCodeCannotConnectNow,
		pgCodeDatabaseDropped:
		return true
	}
	return false
}

// IsDatabaseMissing reports whether err is the server saying the target
// database does not exist.
func IsDatabaseMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCodeInvalidCatalogName
	}
	return false
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ENETUNREACH, syscall.EHOSTUNREACH, syscall.EPIPE} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}
	return false
}

package db

import (
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

var (
	// ErrEmptyFile marks a source CSV with no content at all.
	ErrEmptyFile = errors.New("the file is empty")
	// ErrUnparsable marks a source file that is not valid tabular CSV.
	ErrUnparsable = errors.New("the file could not be parsed")
)

// IsIntegrityViolation reports whether err is a constraint violation
// reported by the server (SQLSTATE class 23).
func IsIntegrityViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}

// IsOperational reports whether err is a connectivity or server
// operational failure rather than a problem with the data itself.
func IsOperational(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57", "58":
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn)
}

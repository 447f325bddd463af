package orderrepo

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"foodbot/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ClassifyError wraps connection-level failures with
// ports.ErrRepositoryUnavailable. Errors raised by a query that actually ran
// are returned unchanged.
func ClassifyError(err error) error {
	if err == nil || errors.Is(err, ports.ErrRepositoryUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", ports.ErrRepositoryUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isUnavailableSQLState(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return isUnavailableSQLState(string(pqErr.Code))
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// isUnavailableSQLState matches class 08 (connection exception) and the
// operator-intervention shutdown codes.
func isUnavailableSQLState(code string) bool {
	if len(code) >= 2 && code[:2] == "08" {
		return true
	}
	switch code {
	case "57P01", "57P02", "57P03":
		return true
	}
	return false
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

const maxRetries = 3

// withRetry reintenta fn con backoff exponencial ante errores transitorios de
// conexión. Solo se usa en consultas de lectura (las escrituras no son
// idempotentes por el CAS). Si los reintentos se agotan, el error se envuelve
// en domain.ErrUnavailable para que HTTP responda 503.
func withRetry(ctx context.Context, fn func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(50*time.Millisecond),
			backoff.WithMaxInterval(500*time.Millisecond),
		), maxRetries),
		ctx,
	)

	err := backoff.Retry(func() error {
		if err := fn(); err != nil {
			if isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
	if err != nil && isTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}

// isTransient reconoce fallos de conexión que vale la pena reintentar.
func isTransient(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx connection exceptions, 57P03 cannot_connect_now
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" || pgErr.Code == "57P03"
	}
	return false
}

package repository

import (
	"errors"
	"fmt"

	repo "backoffice/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBエラーを repo.ErrStorage で包む。postgresならSQLSTATEも残す
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: %s (sqlstate %s)", repo.ErrStorage, op, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %s: %v", repo.ErrStorage, op, err)
}

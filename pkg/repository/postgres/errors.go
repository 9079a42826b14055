package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

const (
	defaultLimit = 50

	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type scanner interface {
	Scan(dest ...any) error
}

// writeErr maps driver errors of inserts, updates and lookups to apperrors.
func writeErr(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(entity, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s already exists (%s)", apperrors.ErrConflict, entity, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return apperrors.Validation("%s references a missing row (%s)", entity, pgErr.ConstraintName)
		}
	}
	return err
}

// deleteErr maps driver errors of deletes: a still referenced row is a conflict.
func deleteErr(err error, entity string, id any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s %v is still in use (%s)", apperrors.ErrConflict, entity, id, pgErr.ConstraintName)
	}
	return err
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

// affected turns "no row touched" into NotFound.
func affected(tag pgconn.CommandTag, entity string, id any) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(entity, id)
	}
	return nil
}

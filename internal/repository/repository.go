package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carepulse/internal/domain"
)

type Repositories struct {
	Documents DocumentRepository
	Users     UserRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Documents: NewDocumentRepository(db),
		Users:     NewUserRepository(db),
	}
}

// DocumentRepository stores schemaless records grouped in named collections.
type DocumentRepository interface {
	Create(ctx context.Context, collection, id string, data map[string]any) (*domain.Document, error)
	Get(ctx context.Context, collection, id string) (*domain.Document, error)
	List(ctx context.Context, collection string, filter domain.DocumentFilter) (*domain.DocumentList, error)
	// Update merges partial into the stored data. Keys not in partial are kept.
	Update(ctx context.Context, collection, id string, partial map[string]any) (*domain.Document, error)
}

type UserRepository interface {
	Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByEmail(ctx context.Context, email string) ([]domain.User, error)
}

type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

// mapError translates driver errors into the domain sentinels. what names
// the failed operation for the log.
func mapError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", what, domain.ErrConflict)
		case codeForeignKeyViolation, codeInvalidTextRepr:
			return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w: %v", what, domain.ErrUnavailable, err)
}

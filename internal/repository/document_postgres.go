package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carepulse/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type DocumentRepo struct {
	db queryable
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create stores data under id. An empty id gets a generated one.
func (r *DocumentRepo) Create(ctx context.Context, collection, id string, data map[string]any) (*domain.Document, error) {
	if id == "" {
		id = uuid.New().String()
	}
	if data == nil {
		data = map[string]any{}
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, data, created_at, updated_at
	`

	doc, err := scanDocument(collection, r.db.QueryRow(ctx, query, collection, id, data))
	if err != nil {
		return nil, mapError(fmt.Sprintf("create %s document", collection), err)
	}
	return doc, nil
}

func (r *DocumentRepo) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2
	`

	doc, err := scanDocument(collection, r.db.QueryRow(ctx, query, collection, id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("get %s document %s", collection, id), err)
	}
	return doc, nil
}

func (r *DocumentRepo) List(ctx context.Context, collection string, filter domain.DocumentFilter) (*domain.DocumentList, error) {
	if err := r.ensureCollection(ctx, collection); err != nil {
		return nil, err
	}

	where, args := listConditions(collection, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM documents WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, mapError(fmt.Sprintf("count %s documents", collection), err)
	}

	order := "ASC"
	if filter.OrderDesc {
		order = "DESC"
	}
	limit, offset := pageBounds(filter)
	query := fmt.Sprintf(`
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE %s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d
	`, where, order, order, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(fmt.Sprintf("list %s documents", collection), err)
	}
	defer rows.Close()

	list := &domain.DocumentList{Total: total, Documents: []domain.Document{}}
	for rows.Next() {
		doc, err := scanDocument(collection, rows)
		if err != nil {
			return nil, mapError(fmt.Sprintf("read %s document", collection), err)
		}
		list.Documents = append(list.Documents, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Sprintf("list %s documents", collection), err)
	}

	return list, nil
}

func (r *DocumentRepo) Update(ctx context.Context, collection, id string, partial map[string]any) (*domain.Document, error) {
	if partial == nil {
		partial = map[string]any{}
	}

	query := `
		UPDATE documents
		SET data = data || $3, updated_at = NOW()
		WHERE collection = $1 AND id = $2
		RETURNING id, data, created_at, updated_at
	`

	doc, err := scanDocument(collection, r.db.QueryRow(ctx, query, collection, id, partial))
	if err != nil {
		return nil, mapError(fmt.Sprintf("update %s document %s", collection, id), err)
	}
	return doc, nil
}

func (r *DocumentRepo) ensureCollection(ctx context.Context, collection string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM collections WHERE name = $1)`, collection).Scan(&exists)
	if err != nil {
		return mapError("check collection", err)
	}
	if !exists {
		return fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
	}
	return nil
}

// listConditions builds the WHERE clause of a list. Equality filters are
// matched with JSONB containment so the GIN index serves them.
func listConditions(collection string, filter domain.DocumentFilter) (string, []any) {
	where := "collection = $1"
	args := []any{collection}
	if len(filter.Equal) > 0 {
		args = append(args, filter.Equal)
		where += fmt.Sprintf(" AND data @> $%d", len(args))
	}
	return where, args
}

func pageBounds(filter domain.DocumentFilter) (limit, offset int) {
	limit = filter.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	offset = filter.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func scanDocument(collection string, row pgx.Row) (*domain.Document, error) {
	doc := domain.Document{Collection: collection}
	if err := row.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return &doc, nil
}

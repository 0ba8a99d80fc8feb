package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"carepulse/internal/domain"
)

type UserRepo struct {
	db queryable
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

// Create inserts a user. The email is unique regardless of case.
func (r *UserRepo) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	query := `
		INSERT INTO users (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id::text, name, email, phone, created_at
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, uuid.New().String(), params.Name, params.Email, params.Phone).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, mapError("create user", err)
	}

	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id::text, name, email, phone, created_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, mapError(fmt.Sprintf("get user %s", id), err)
	}

	return &user, nil
}

func (r *UserRepo) ListByEmail(ctx context.Context, email string) ([]domain.User, error) {
	query := `
		SELECT id::text, name, email, phone, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, mapError("list users by email", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.CreatedAt); err != nil {
			return nil, mapError("read user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users by email", err)
	}

	return users, nil
}

package repository

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/lib/pq"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, password, email, phone, role, created_at
		FROM users
		WHERE username = $1`, username,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Password,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, username, password, email, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		user.Name,
		user.Username,
		user.Password,
		user.Email,
		user.Phone,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return nil, domain.NewError("Username already exists", http.StatusConflict)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

type userRow struct {
	ID        int64  `db:"id"`
	Username  string `db:"username"`
	Password  string `db:"password"`
	CreatedAt string `db:"created_at"`
}

func (r *CredentialRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}

	created := *user
	created.ID = strconv.FormatInt(id, 10)
	return &created, nil
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, username, password, created_at FROM users WHERE username = ? ORDER BY id`, username); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("user %d created_at: %w", row.ID, err)
		}
		users = append(users, &domain.User{
			ID:           strconv.FormatInt(row.ID, 10),
			Username:     row.Username,
			PasswordHash: row.Password,
			CreatedAt:    createdAt,
		})
	}
	return users, nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "storefront/internal/config"
	"storefront/internal/domain"

	"github.com/google/uuid"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, password_hash`

func scanUser(s rowScanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

func (r UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the user does not exist.
func (r UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetByEmail returns sql.ErrNoRows when no user owns the email.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email))
}

func (r UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update replaces name and email of the user identified by u.ID.
func (r UserRepository) Update(ctx context.Context, u domain.User) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, u.Name, u.Email, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, hash, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func (r UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db().ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

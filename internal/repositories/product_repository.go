package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "storefront/internal/config"
	"storefront/internal/domain"

	"github.com/google/uuid"
)

type ProductRepository struct {
	DB *sql.DB
}

func (r ProductRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const productColumns = `id, name, description, price, quantity, category`

func scanProduct(s rowScanner) (domain.Product, error) {
	var p domain.Product
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category)
	return p, err
}

func (r ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the product does not exist.
func (r ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	return scanProduct(r.db().QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
}

func (r ProductRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	return scanProduct(r.db().QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE name = ? LIMIT 1`, name))
}

func (r ProductRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, quantity, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Category)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// Update replaces every field of the product identified by p.ID.
func (r ProductRepository) Update(ctx context.Context, p domain.Product) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, quantity = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db().ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

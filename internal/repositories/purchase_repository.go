package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "storefront/internal/config"
	"storefront/internal/domain"

	"github.com/google/uuid"
)

type PurchaseRepository struct {
	DB *sql.DB
}

func (r PurchaseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const purchaseColumns = `id, name, price, quantity`

func scanPurchase(s rowScanner) (domain.Purchase, error) {
	var p domain.Purchase
	err := s.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	return p, err
}

func (r PurchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	out := []domain.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the purchase does not exist.
func (r PurchaseRepository) GetByID(ctx context.Context, id string) (domain.Purchase, error) {
	return scanPurchase(r.db().QueryRowContext(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id))
}

func (r PurchaseRepository) GetByName(ctx context.Context, name string) (domain.Purchase, error) {
	return scanPurchase(r.db().QueryRowContext(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE name = ? LIMIT 1`, name))
}

func (r PurchaseRepository) Create(ctx context.Context, p domain.Purchase) (domain.Purchase, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO purchases (id, name, price, quantity)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.Price, p.Quantity)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("insert purchase: %w", err)
	}
	return p, nil
}

func (r PurchaseRepository) Update(ctx context.Context, p domain.Purchase) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE purchases
		SET name = ?, price = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Price, p.Quantity, p.ID)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

func (r PurchaseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db().ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/utils"
)

type PurchaseStore interface {
	List(ctx context.Context) ([]domain.Purchase, error)
	GetByID(ctx context.Context, id string) (domain.Purchase, error)
	GetByName(ctx context.Context, name string) (domain.Purchase, error)
	Create(ctx context.Context, p domain.Purchase) (domain.Purchase, error)
	Update(ctx context.Context, p domain.Purchase) error
	Delete(ctx context.Context, id string) error
}

var PurchaseFields = query.Fields[domain.Purchase]{
	"id":       {Value: func(p domain.Purchase) string { return p.ID }},
	"name":     {Value: func(p domain.Purchase) string { return p.Name }},
	"price":    {Value: func(p domain.Purchase) string { return p.Price }, Numeric: true},
	"quantity": {Value: func(p domain.Purchase) string { return p.Quantity }, Numeric: true},
}

type PurchaseService struct {
	Repo      PurchaseStore
	RequestID string
}

type PurchaseInput struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
}

func (in PurchaseInput) toPurchase(id string) domain.Purchase {
	return domain.Purchase{
		ID:       id,
		Name:     in.Name,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
}

func (s PurchaseService) List(ctx context.Context) ([]domain.Purchase, error) {
	purchases, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list purchases", Err: err}
	}
	return purchases, nil
}

func (s PurchaseService) ListPage(ctx context.Context, d query.Directive) (query.Page[domain.Purchase], error) {
	purchases, err := s.List(ctx)
	if err != nil {
		return query.Page[domain.Purchase]{}, err
	}
	return paginate(purchases, PurchaseFields, d)
}

// Get returns nil without error when the purchase does not exist.
func (s PurchaseService) Get(ctx context.Context, id string) (*domain.Purchase, error) {
	return lookup(s.Repo.GetByID(ctx, id))
}

func (s PurchaseService) NameIsRegistered(ctx context.Context, name string) (bool, error) {
	p, err := lookup(s.Repo.GetByName(ctx, name))
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (s PurchaseService) Create(ctx context.Context, in PurchaseInput) (domain.Purchase, error) {
	taken, err := s.NameIsRegistered(ctx, in.Name)
	if err != nil {
		return domain.Purchase{}, err
	}
	if taken {
		return domain.Purchase{}, domain.ConflictError{Resource: "purchase", Field: "name"}
	}

	p, err := s.Repo.Create(ctx, in.toPurchase(""))
	if err != nil {
		return domain.Purchase{}, writeError("purchase", "name", "create", err)
	}
	utils.LogEvent(s.RequestID, "purchase", "create", utils.KV("id", p.ID))
	return p, nil
}

func (s PurchaseService) Update(ctx context.Context, id string, in PurchaseInput) (domain.Purchase, error) {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return domain.Purchase{}, err
	}
	if existing == nil {
		return domain.Purchase{}, domain.NotFoundError{Resource: "purchase"}
	}

	p := in.toPurchase(id)
	if err := s.Repo.Update(ctx, p); err != nil {
		return domain.Purchase{}, writeError("purchase", "name", "update", err)
	}
	utils.LogEvent(s.RequestID, "purchase", "update", utils.KV("id", id))
	return p, nil
}

func (s PurchaseService) Delete(ctx context.Context, id string) error {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundError{Resource: "purchase"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return domain.InternalError{Msg: "Failed to delete purchase", Err: err}
	}
	utils.LogEvent(s.RequestID, "purchase", "delete", utils.KV("id", id))
	return nil
}

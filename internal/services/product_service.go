package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/utils"
)

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	GetByName(ctx context.Context, name string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

var ProductFields = query.Fields[domain.Product]{
	"id":          {Value: func(p domain.Product) string { return p.ID }},
	"name":        {Value: func(p domain.Product) string { return p.Name }},
	"description": {Value: func(p domain.Product) string { return p.Description }},
	"price":       {Value: func(p domain.Product) string { return p.Price }, Numeric: true},
	"quantity":    {Value: func(p domain.Product) string { return p.Quantity }, Numeric: true},
	"category":    {Value: func(p domain.Product) string { return p.Category }},
}

type ProductService struct {
	Repo      ProductStore
	RequestID string
}

type ProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

func (in ProductInput) toProduct(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
	}
}

func (s ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list products", Err: err}
	}
	return products, nil
}

func (s ProductService) ListPage(ctx context.Context, d query.Directive) (query.Page[domain.Product], error) {
	products, err := s.List(ctx)
	if err != nil {
		return query.Page[domain.Product]{}, err
	}
	return paginate(products, ProductFields, d)
}

// Get returns nil without error when the product does not exist.
func (s ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return lookup(s.Repo.GetByID(ctx, id))
}

func (s ProductService) NameIsRegistered(ctx context.Context, name string) (bool, error) {
	p, err := lookup(s.Repo.GetByName(ctx, name))
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (s ProductService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	taken, err := s.NameIsRegistered(ctx, in.Name)
	if err != nil {
		return domain.Product{}, err
	}
	if taken {
		return domain.Product{}, domain.ConflictError{Resource: "product", Field: "name"}
	}

	p, err := s.Repo.Create(ctx, in.toProduct(""))
	if err != nil {
		return domain.Product{}, writeError("product", "name", "create", err)
	}
	utils.LogEvent(s.RequestID, "product", "create", utils.KV("id", p.ID))
	return p, nil
}

// Update replaces every field of the product identified by id.
func (s ProductService) Update(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.NotFoundError{Resource: "product"}
	}

	p := in.toProduct(id)
	if err := s.Repo.Update(ctx, p); err != nil {
		return domain.Product{}, writeError("product", "name", "update", err)
	}
	utils.LogEvent(s.RequestID, "product", "update", utils.KV("id", id))
	return p, nil
}

func (s ProductService) Delete(ctx context.Context, id string) error {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundError{Resource: "product"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return domain.InternalError{Msg: "Failed to delete product", Err: err}
	}
	utils.LogEvent(s.RequestID, "product", "delete", utils.KV("id", id))
	return nil
}

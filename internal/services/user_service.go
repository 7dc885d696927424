package services

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/utils"
)

type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

// UserFields are the searchable/sortable fields of the public user projection.
var UserFields = query.Fields[domain.PublicUser]{
	"id":    {Value: func(u domain.PublicUser) string { return u.ID }},
	"name":  {Value: func(u domain.PublicUser) string { return u.Name }},
	"email": {Value: func(u domain.PublicUser) string { return u.Email }},
}

type UserService struct {
	Repo      UserStore
	RequestID string
}

type CreateUserInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type UpdateUserInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordInput struct {
	PasswordOld     string `json:"password_old" binding:"required"`
	PasswordNew     string `json:"password_new" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

func (s UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list users", Err: err}
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToPublic())
	}
	return out, nil
}

func (s UserService) ListPage(ctx context.Context, d query.Directive) (query.Page[domain.PublicUser], error) {
	users, err := s.List(ctx)
	if err != nil {
		return query.Page[domain.PublicUser]{}, err
	}
	return paginate(users, UserFields, d)
}

// Get returns nil without error when the user does not exist.
func (s UserService) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	u, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil || u == nil {
		return nil, err
	}
	pub := u.ToPublic()
	return &pub, nil
}

func (s UserService) EmailIsRegistered(ctx context.Context, email string) (bool, error) {
	u, err := lookup(s.Repo.GetByEmail(ctx, utils.NormalizeEmail(email)))
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s UserService) Create(ctx context.Context, in CreateUserInput) (domain.PublicUser, error) {
	if in.Password != in.PasswordConfirm {
		return domain.PublicUser{}, domain.ValidationError{Field: "password_confirm", Code: "invalid_password", Msg: "Password confirmation mismatched"}
	}

	email := utils.NormalizeEmail(in.Email)
	taken, err := s.EmailIsRegistered(ctx, email)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if taken {
		return domain.PublicUser{}, domain.ConflictError{Resource: "user", Field: "email"}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.PublicUser{}, domain.InternalError{Msg: "Failed to create user", Err: err}
	}

	u, err := s.Repo.Create(ctx, domain.User{Name: utils.TrimOrEmpty(in.Name), Email: email, PasswordHash: hash})
	if err != nil {
		return domain.PublicUser{}, writeError("user", "email", "create", err)
	}
	utils.LogEvent(s.RequestID, "user", "create", utils.KV("id", u.ID))
	return u.ToPublic(), nil
}

// Update replaces name and email. The email may stay the same but must not
// belong to another user.
func (s UserService) Update(ctx context.Context, id string, in UpdateUserInput) error {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundError{Resource: "user"}
	}

	email := utils.NormalizeEmail(in.Email)
	owner, err := lookup(s.Repo.GetByEmail(ctx, email))
	if err != nil {
		return err
	}
	if owner != nil && owner.ID != id {
		return domain.ConflictError{Resource: "user", Field: "email"}
	}

	if err := s.Repo.Update(ctx, domain.User{ID: id, Name: utils.TrimOrEmpty(in.Name), Email: email}); err != nil {
		return writeError("user", "email", "update", err)
	}
	utils.LogEvent(s.RequestID, "user", "update", utils.KV("id", id))
	return nil
}

func (s UserService) Delete(ctx context.Context, id string) error {
	existing, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundError{Resource: "user"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return domain.InternalError{Msg: "Failed to delete user", Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "delete", utils.KV("id", id))
	return nil
}

func (s UserService) ChangePassword(ctx context.Context, id string, in ChangePasswordInput) error {
	if in.PasswordNew != in.PasswordConfirm {
		return domain.ValidationError{Field: "password_confirm", Code: "invalid_password", Msg: "Password confirmation mismatched"}
	}

	u, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFoundError{Resource: "user"}
	}
	if !auth.CheckPassword(in.PasswordOld, u.PasswordHash) {
		return domain.CredentialsError{Msg: "Wrong password"}
	}

	hash, err := auth.HashPassword(in.PasswordNew)
	if err != nil {
		return domain.InternalError{Msg: "Failed to change password", Err: err}
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return domain.InternalError{Msg: "Failed to change password", Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "change_password", utils.KV("id", id))
	return nil
}

package services

import (
	"context"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/utils"
)

// UserFinder is the lookup the login flow needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	Users     UserFinder
	Throttle  *auth.Throttle
	Secret    []byte
	TokenTTL  time.Duration
	RequestID string
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the throttle first; while locked, credentials are not consulted.
// Unknown emails and wrong passwords both count as failed attempts.
func (s AuthService) Login(ctx context.Context, email, password string, now time.Time) (domain.Session, error) {
	if err := s.Throttle.Check(ctx, now); err != nil {
		if domain.IsLocked(err) {
			utils.LogEvent(s.RequestID, "auth", "login_locked", err.Error())
			return domain.Session{}, err
		}
		return domain.Session{}, domain.InternalError{Msg: "failed to read login throttle", Err: err}
	}

	u, err := lookup(s.Users.GetByEmail(ctx, utils.NormalizeEmail(email)))
	if err != nil {
		return domain.Session{}, err
	}

	if u == nil || !auth.CheckPassword(password, u.PasswordHash) {
		count, err := s.Throttle.Fail(ctx, now)
		if err != nil {
			return domain.Session{}, domain.InternalError{Msg: "failed to record login attempt", Err: err}
		}
		utils.LogEvent(s.RequestID, "auth", "login_failed", utils.KV("attempts", count))
		return domain.Session{}, domain.CredentialsError{Attempts: count}
	}

	if err := s.Throttle.Succeed(ctx); err != nil {
		return domain.Session{}, domain.InternalError{Msg: "failed to reset login throttle", Err: err}
	}

	token, err := auth.GenerateToken(u.ID, u.Email, s.Secret, s.TokenTTL)
	if err != nil {
		return domain.Session{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", utils.KV("user_id", u.ID))

	return domain.Session{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Token:  token,
	}, nil
}

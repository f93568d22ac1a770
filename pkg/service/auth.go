package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
)

// AuthService verifies credentials and issues bearer tokens. The user id
// is the sole authorization claim carried by a token.
type AuthService struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// NewAuthService creates an AuthService with the given signing config.
func NewAuthService(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *AuthService {
	return &AuthService{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the username/password pair and returns the user with the
// credential redacted. Unknown usernames and wrong passwords fail the same
// way so the response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		s.logger.Warn("login failed", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	return u.Redacted(), nil
}

// GenerateToken issues an HS256 token whose user_id claim identifies the
// subject.
func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// ParseToken verifies a raw bearer token and returns it parsed.
func (s *AuthService) ParseToken(raw string) (*jwt.Token, error) {
	return jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
}

// Subject extracts the caller's user id from a verified token. A token
// without a parseable user_id claim fails with domain.ErrForbidden.
func (s *AuthService) Subject(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrForbidden
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrForbidden
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrForbidden
	}
	return id, nil
}

// Package service holds the business logic over the repository contracts:
// user lifecycle, authentication, and account/transaction posting.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
)

// UserUpdate carries a partial user update; nil fields are left unchanged.
type UserUpdate struct {
	FullName *string
	Password *string
}

// UserService manages user records. Every read path returns the user with
// the credential redacted.
type UserService struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewUserService creates a UserService over the given unit of work.
func NewUserService(uow repository.UnitOfWork, logger *slog.Logger) *UserService {
	return &UserService{uow: uow, logger: logger}
}

// CreateUser registers a new user. Usernames are unique ignoring case;
// a collision fails with domain.ErrConflict.
func (s *UserService) CreateUser(ctx context.Context, username, fullName, password string) (*domain.User, error) {
	u, err := domain.NewUser(username, fullName, password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := repo.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: username already exists", domain.ErrConflict)
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	return u.Redacted(), nil
}

// GetUser returns the user by id with the credential redacted.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u.Redacted(), nil
}

// UpdateUser applies a partial update to full name and/or password.
// A new password is hashed before it is stored.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error) {
	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if update.FullName != nil {
			u.FullName = *update.FullName
		}
		if update.Password != nil {
			if err := u.SetPassword(*update.Password); err != nil {
				return err
			}
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated", "user_id", id)
	return u.Redacted(), nil
}

// DeleteUser removes the user. A user that still owns accounts cannot be
// deleted and fails with domain.ErrConflict.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := userRepo.Get(ctx, id); err != nil {
			return err
		}
		accountRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		hasAccounts, err := accountRepo.ExistsByUser(ctx, id)
		if err != nil {
			return err
		}
		if hasAccounts {
			return fmt.Errorf("%w: user has accounts", domain.ErrConflict)
		}
		return userRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

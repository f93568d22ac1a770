// Package repository defines the storage contracts shared by every backend.
// Two implementations exist: infra/repository (GORM/Postgres) and
// infra/memory (process-local maps). Callers must not be able to tell them
// apart except for persistence across restarts.
package repository

import (
	"context"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/google/uuid"
)

// UserRepository stores user records.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error
	// Get returns the user by id, or domain.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByUsername returns the user by exact username, or domain.ErrNotFound.
	// This is the only read path that exposes the stored credential hash.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// UsernameExists reports whether a user exists with this username,
	// compared case-insensitively.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Update replaces the stored user by id, or domain.ErrNotFound.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user by id, or domain.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository stores accounts.
type AccountRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, account *domain.Account) error
	// Get returns the account by id, or domain.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// GetForUpdate returns the account by id with the row locked for the
	// rest of the unit of work. Backends without row locks must serialize
	// the whole unit of work instead.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// ListByUser returns the owner's accounts in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error)
	// Update replaces the stored account by id. It must fail with
	// domain.ErrNotFound rather than silently create.
	Update(ctx context.Context, account *domain.Account) error
	// Delete removes the account by id, or domain.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByUser reports whether the user owns at least one account.
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

// TransactionRepository stores the append-only ledger. Entries are never
// updated or deleted individually.
type TransactionRepository interface {
	// Create appends a ledger entry. The referenced account must exist.
	Create(ctx context.Context, tx *domain.Transaction) error
	// ListByAccount returns the account's entries in creation order.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error)
	// Get returns the entry keyed by (accountID, id), or domain.ErrNotFound.
	Get(ctx context.Context, accountID, id uuid.UUID) (*domain.Transaction, error)
	// DeleteByAccount drops the account's history when the account is
	// deleted, so no entry references a dead account id.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

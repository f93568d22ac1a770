// Package memory is the process-local storage backend: plain maps guarded
// by a single store lock. It satisfies the same repository contracts as
// the durable backend; only persistence across restarts differs.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
)

// Store holds all state. Values are stored and returned by copy so callers
// can never mutate state behind the store's back.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]domain.User
	accounts     map[uuid.UUID]domain.Account
	accountOrder []uuid.UUID
	transactions map[uuid.UUID][]domain.Transaction
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		accounts:     make(map[uuid.UUID]domain.Account),
		transactions: make(map[uuid.UUID][]domain.Transaction),
	}
}

// UnitOfWork serializes units of work on the store lock. Holding the lock
// for the whole unit of work gives the same guarantee the durable backend
// gets from a row-locking transaction: a posting's read-modify-write plus
// ledger append runs without interleaving, so no update can be lost.
//
// There is no rollback here; a unit of work that fails between writes
// would leave partial state. Services therefore do all validation before
// their first write, which keeps the two posting writes failure-free once
// reached (single process, no I/O between two map assignments).
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work over the store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Do runs fn holding the store lock. Do must not be nested.
func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u)
}

// UserRepository implements repository.UnitOfWork.
func (u *UnitOfWork) UserRepository() (repository.UserRepository, error) {
	return &userRepository{store: u.store}, nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{store: u.store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{store: u.store}, nil
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.store.users[user.ID] = *user
	return nil
}

func (r *userRepository) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.users, id)
	return nil
}

type accountRepository struct {
	store *Store
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.store.accounts[account.ID] = *account
	r.store.accountOrder = append(r.store.accountOrder, account.ID)
	return nil
}

func (r *accountRepository) Get(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// GetForUpdate is plain Get here; exclusion comes from the store lock held
// across the unit of work.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	for _, id := range r.store.accountOrder {
		a, ok := r.store.accounts[id]
		if !ok || a.UserID != userID {
			continue
		}
		found := a
		accounts = append(accounts, &found)
	}
	return accounts, nil
}

func (r *accountRepository) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.store.accounts[account.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.accounts[account.ID] = *account
	return nil
}

func (r *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.accounts, id)
	return nil
}

func (r *accountRepository) ExistsByUser(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type transactionRepository struct {
	store *Store
}

func (r *transactionRepository) Create(_ context.Context, tx *domain.Transaction) error {
	if _, ok := r.store.accounts[tx.AccountID]; !ok {
		return domain.ErrNotFound
	}
	r.store.transactions[tx.AccountID] = append(r.store.transactions[tx.AccountID], *tx)
	return nil
}

func (r *transactionRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	entries := r.store.transactions[accountID]
	txs := make([]*domain.Transaction, 0, len(entries))
	for i := range entries {
		tx := entries[i]
		txs = append(txs, &tx)
	}
	return txs, nil
}

func (r *transactionRepository) Get(_ context.Context, accountID, id uuid.UUID) (*domain.Transaction, error) {
	for _, tx := range r.store.transactions[accountID] {
		if tx.ID == id {
			found := tx
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *transactionRepository) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	delete(r.store.transactions, accountID)
	return nil
}

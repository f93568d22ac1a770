package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService owns accounts and their ledgers. Every operation takes
// the caller's user id and enforces ownership before touching state.
type AccountService struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewAccountService creates an AccountService over the given unit of work.
func NewAccountService(uow repository.UnitOfWork, logger *slog.Logger) *AccountService {
	return &AccountService{uow: uow, logger: logger}
}

// CreateAccount opens an account for the caller with a zero balance and a
// generated account number.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, accountType string) (*domain.Account, error) {
	a, err := domain.NewAccount(userID, accountType)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "account_id", a.ID, "user_id", userID)
	return a, nil
}

// GetAccount returns the account if the caller owns it.
func (s *AccountService) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	var a *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccounts returns the caller's accounts in insertion order.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateAccountType changes the account type, the only field a caller may
// patch on an account.
func (s *AccountService) UpdateAccountType(ctx context.Context, userID, accountID uuid.UUID, accountType string) (*domain.Account, error) {
	var a *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}
		a.AccountType = accountType
		return repo.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAccount removes the account and its transaction history, so no
// ledger entry references a dead account id.
func (s *AccountService) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accountRepo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := txRepo.DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		return accountRepo.Delete(ctx, accountID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("account deleted", "account_id", accountID, "user_id", userID)
	return nil
}

// Post applies a single deposit or withdrawal against one account.
//
// The whole posting runs inside one unit of work with the account locked
// for update: the balance mutation and the ledger append commit together
// or not at all, and concurrent postings against the same account cannot
// lose updates.
func (s *AccountService) Post(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error) {
	var tx *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}

		switch txType {
		case domain.TransactionDeposit:
			tx, err = a.Deposit(userID, amount)
		case domain.TransactionWithdraw:
			tx, err = a.Withdraw(userID, amount)
		default:
			return fmt.Errorf("%w: type must be DEPOSIT or WITHDRAW", domain.ErrInvalidRequest)
		}
		if err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, a); err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("posting applied",
		"account_id", accountID,
		"type", tx.Type,
		"amount", tx.Amount,
	)
	return tx, nil
}

// ListTransactions returns the account's ledger in creation order.
func (s *AccountService) ListTransactions(ctx context.Context, userID, accountID uuid.UUID) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accountRepo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = txRepo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// GetTransaction returns one ledger entry keyed by (accountID, id).
func (s *AccountService) GetTransaction(ctx context.Context, userID, accountID, txID uuid.UUID) (*domain.Transaction, error) {
	var tx *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accountRepo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrForbidden
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, accountID, txID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

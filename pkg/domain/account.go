package domain

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of posting applied to an account.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
)

// ParseTransactionType accepts the wire value case-insensitively and
// returns the canonical type, or ErrInvalidRequest for anything else.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(s)) {
	case TransactionDeposit:
		return TransactionDeposit, nil
	case TransactionWithdraw:
		return TransactionWithdraw, nil
	default:
		return "", fmt.Errorf("%w: type must be DEPOSIT or WITHDRAW", ErrInvalidRequest)
	}
}

// Account is a user-owned balance holder. Balance is an exact decimal and
// never goes negative after a committed posting.
type Account struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Number      string          `json:"account_number"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Transaction is one immutable ledger entry. Amount is always positive;
// the direction lives in Type.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// accountSeq disambiguates account numbers generated within the same
// millisecond. Wall clock alone collides under concurrent creations.
var accountSeq atomic.Uint64

func nextAccountNumber() string {
	return fmt.Sprintf("ACCT-%d-%d", time.Now().UnixMilli(), accountSeq.Add(1))
}

// NewAccount creates an account for the owner with a zero balance and a
// generated account number.
func NewAccount(userID uuid.UUID, accountType string) (*Account, error) {
	if strings.TrimSpace(accountType) == "" {
		return nil, fmt.Errorf("%w: accountType is required", ErrInvalidRequest)
	}
	now := time.Now().UTC()
	return &Account{
		ID:          uuid.New(),
		UserID:      userID,
		Number:      nextAccountNumber(),
		AccountType: accountType,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewAccountFromData hydrates an Account from stored data.
func NewAccountFromData(
	id, userID uuid.UUID,
	number, accountType string,
	balance decimal.Decimal,
	created, updated time.Time,
) *Account {
	return &Account{
		ID:          id,
		UserID:      userID,
		Number:      number,
		AccountType: accountType,
		Balance:     balance,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
}

// NewTransactionFromData hydrates a Transaction from stored data. Business
// postings must go through Account.Deposit / Account.Withdraw instead.
func NewTransactionFromData(
	id, accountID uuid.UUID,
	amount decimal.Decimal,
	txType TransactionType,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: created,
	}
}

func (a *Account) authorize(userID uuid.UUID) error {
	if a.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// Deposit adds funds to the account and returns the ledger entry.
// The caller must own the account and the amount must be positive.
func (a *Account) Deposit(userID uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if err := a.authorize(userID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidRequest)
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return &Transaction{
		ID:        uuid.New(),
		AccountID: a.ID,
		Amount:    amount,
		Type:      TransactionDeposit,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Withdraw removes funds from the account and returns the ledger entry.
// Fails with ErrInsufficientFunds when the amount exceeds the balance;
// the balance is untouched on any failure.
func (a *Account) Withdraw(userID uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if err := a.authorize(userID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidRequest)
	}
	if a.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return &Transaction{
		ID:        uuid.New(),
		AccountID: a.ID,
		Amount:    amount,
		Type:      TransactionWithdraw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, err := NewAccount(userID, "checking")
	require.NoError(t, err)
	assert.Equal(t, userID, a.UserID)
	assert.Equal(t, "checking", a.AccountType)
	assert.True(t, a.Balance.IsZero())
	assert.NotEmpty(t, a.Number)
}

func TestNewAccount_BlankType(t *testing.T) {
	t.Parallel()
	_, err := NewAccount(uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNewAccount_UniqueNumbers(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for n := 0; n < 100; n++ {
		a, err := NewAccount(uuid.New(), "checking")
		require.NoError(t, err)
		assert.False(t, seen[a.Number], "duplicate account number %s", a.Number)
		seen[a.Number] = true
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, _ := NewAccount(userID, "checking")

	tx, err := a.Deposit(userID, d("100.50"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(d("100.50")))
	assert.Equal(t, TransactionDeposit, tx.Type)
	assert.True(t, tx.Amount.Equal(d("100.50")))
	assert.Equal(t, a.ID, tx.AccountID)
}

func TestDeposit_WrongOwner(t *testing.T) {
	t.Parallel()
	a, _ := NewAccount(uuid.New(), "checking")
	_, err := a.Deposit(uuid.New(), d("10"))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, a.Balance.IsZero())
}

func TestDeposit_NonPositive(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, _ := NewAccount(userID, "checking")
	for _, amount := range []decimal.Decimal{decimal.Zero, d("-5")} {
		_, err := a.Deposit(userID, amount)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
	assert.True(t, a.Balance.IsZero())
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, _ := NewAccount(userID, "checking")
	_, err := a.Deposit(userID, d("200"))
	require.NoError(t, err)

	tx, err := a.Withdraw(userID, d("50"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(d("150")))
	assert.Equal(t, TransactionWithdraw, tx.Type)
	assert.True(t, tx.Amount.Equal(d("50")))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, _ := NewAccount(userID, "checking")
	_, err := a.Deposit(userID, d("40"))
	require.NoError(t, err)

	_, err = a.Withdraw(userID, d("40.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, a.Balance.Equal(d("40")), "balance unchanged on failed withdrawal")
}

func TestWithdraw_ExactBalance(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	a, _ := NewAccount(userID, "checking")
	_, err := a.Deposit(userID, d("40"))
	require.NoError(t, err)

	_, err = a.Withdraw(userID, d("40"))
	require.NoError(t, err)
	assert.True(t, a.Balance.IsZero())
}

func TestWithdraw_WrongOwner(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	a, _ := NewAccount(owner, "checking")
	_, err := a.Deposit(owner, d("100"))
	require.NoError(t, err)

	_, err = a.Withdraw(uuid.New(), d("10"))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, a.Balance.Equal(d("100")))
}

func TestParseTransactionType(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want TransactionType
	}{
		{"DEPOSIT", TransactionDeposit},
		{"deposit", TransactionDeposit},
		{"Withdraw", TransactionWithdraw},
		{"WITHDRAW", TransactionWithdraw},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	for _, in := range []string{"", "TRANSFER", "withdrawal?"} {
		_, err := ParseTransactionType(in)
		assert.ErrorIs(t, err, ErrInvalidRequest, in)
	}
}

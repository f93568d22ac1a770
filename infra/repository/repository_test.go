package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goldcrest/banking/pkg/domain"
	repo "github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	userRepo := userRepository{db: db}
	u, err := domain.NewUser("testuser", "Test User", "password1")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, userRepo.Create(context.Background(), u))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	assert.Error(t, userRepo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	userRepo := userRepository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "password", "created_at", "updated_at"}))

	_, err := userRepo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_GetForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	accountRepo := accountRepository{db: db}
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "accounts" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "number", "account_type", "balance", "created_at", "updated_at"}).
			AddRow(id, uuid.New(), "ACCT-1", "checking", "150.00", now, now))

	a, err := accountRepo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("150.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	accountRepo := accountRepository{db: db}
	a, err := domain.NewAccount(uuid.New(), "checking")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, accountRepo.Update(context.Background(), a), domain.ErrNotFound)
}

func TestUoW_Do_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(uow repo.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx := domain.NewTransactionFromData(
			uuid.New(), uuid.New(),
			decimal.NewFromInt(10), domain.TransactionDeposit, time.Now(),
		)
		return txRepo.Create(context.Background(), tx)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_Do_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("business rule failed")
	err := uow.Do(context.Background(), func(uow repo.UnitOfWork) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

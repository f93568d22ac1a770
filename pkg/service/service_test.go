package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/goldcrest/banking/infra/memory"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJwtConfig() config.Jwt {
	return config.Jwt{Secret: "test-secret", Expiry: time.Hour}
}

// newTestServices wires all services over a fresh in-memory backend.
func newTestServices() (*UserService, *AccountService, *AuthService) {
	uow := memory.NewUnitOfWork(memory.NewStore())
	logger := testLogger()
	return NewUserService(uow, logger),
		NewAccountService(uow, logger),
		NewAuthService(uow, testJwtConfig(), logger)
}

// MockUnitOfWork is a testify mock for failure-path tests.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() (repository.UserRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.UserRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TransactionRepository)
	return repo, args.Error(1)
}

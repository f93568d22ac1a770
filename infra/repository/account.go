package repository

import (
	"context"

	"github.com/goldcrest/banking/pkg/domain"
	repo "github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	record := toAccountModel(account)
	return mapGormError(r.db.WithContext(ctx).Create(&record).Error)
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var record Account
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return toAccountDomain(&record), nil
}

// GetForUpdate takes a SELECT ... FOR UPDATE row lock so the posting's
// read-modify-write is exclusive for the rest of the transaction.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var record Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return toAccountDomain(&record), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var records []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	accounts := make([]*domain.Account, 0, len(records))
	for i := range records {
		accounts = append(accounts, toAccountDomain(&records[i]))
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"account_type": account.AccountType,
			"balance":      account.Balance,
			"updated_at":   account.UpdatedAt,
		})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, mapGormError(err)
	}
	return count > 0, nil
}

func toAccountModel(a *domain.Account) Account {
	return Account{
		ID:          a.ID,
		UserID:      a.UserID,
		Number:      a.Number,
		AccountType: a.AccountType,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAccountDomain(record *Account) *domain.Account {
	return domain.NewAccountFromData(
		record.ID,
		record.UserID,
		record.Number,
		record.AccountType,
		record.Balance,
		record.CreatedAt,
		record.UpdatedAt,
	)
}

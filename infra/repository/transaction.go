package repository

import (
	"context"

	"github.com/goldcrest/banking/pkg/domain"
	repo "github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository over the given session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	record := toTransactionModel(tx)
	return mapGormError(r.db.WithContext(ctx).Create(&record).Error)
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	var records []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	txs := make([]*domain.Transaction, 0, len(records))
	for i := range records {
		txs = append(txs, toTransactionDomain(&records[i]))
	}
	return txs, nil
}

func (r *transactionRepository) Get(ctx context.Context, accountID, id uuid.UUID) (*domain.Transaction, error) {
	var record Transaction
	err := r.db.WithContext(ctx).
		First(&record, "account_id = ? AND id = ?", accountID, id).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return toTransactionDomain(&record), nil
}

func (r *transactionRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return mapGormError(
		r.db.WithContext(ctx).Delete(&Transaction{}, "account_id = ?", accountID).Error,
	)
}

func toTransactionModel(tx *domain.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Amount:    tx.Amount,
		Type:      string(tx.Type),
		CreatedAt: tx.CreatedAt,
	}
}

func toTransactionDomain(record *Transaction) *domain.Transaction {
	return domain.NewTransactionFromData(
		record.ID,
		record.AccountID,
		record.Amount,
		domain.TransactionType(record.Type),
		record.CreatedAt,
	)
}

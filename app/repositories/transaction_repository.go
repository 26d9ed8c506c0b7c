package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/orm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListByUser returns the user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := orm.On(r.db).WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id ASC").Get(&txs)
	return txs, err
}

// FindForUser returns gorm.ErrRecordNotFound when the transaction belongs to
// another user.
func (r *TransactionRepository) FindForUser(ctx context.Context, userID, id string) (models.Transaction, error) {
	var t models.Transaction
	err := orm.On(r.db).WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t)
	return t, err
}

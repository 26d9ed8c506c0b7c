package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/orm"
)

// ProfileRepository handles database operations for Profile, including
// wallet balance changes.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// Find returns gorm.ErrRecordNotFound when the profile does not exist.
func (r *ProfileRepository) Find(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := orm.On(r.db).WithContext(ctx).Where("id = ?", id).First(&p)
	return p, err
}

// FindOrCreate returns the profile, creating an empty one with a zero
// balance on first access.
func (r *ProfileRepository) FindOrCreate(ctx context.Context, id string) (models.Profile, error) {
	p := models.Profile{ID: id, WalletBalance: decimal.Zero}
	err := r.db.WithContext(ctx).Where(models.Profile{ID: id}).FirstOrCreate(&p).Error
	return p, err
}

// Update writes the given columns.
func (r *ProfileRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields).Error
}

// Debit subtracts amount only when the balance covers it, in one
// statement. It reports whether the row was updated.
func (r *ProfileRepository) Debit(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE profiles SET wallet_balance = wallet_balance - ?, updated_at = ? WHERE id = ? AND wallet_balance >= ?",
		amount.String(), r.db.NowFunc(), id, amount.String(),
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetBalance overwrites the wallet balance.
func (r *ProfileRepository) SetBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).
		Update("wallet_balance", balance).Error
}

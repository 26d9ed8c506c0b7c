package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/orm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create inserts the order and then its items in one batch.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	items := o.Items
	o.Items = nil
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		o.Items = items
		return err
	}

	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items
	if len(items) == 0 {
		return nil
	}
	if err := r.detachMissingProducts(ctx, o.Items); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("Product").CreateInBatches(&o.Items, 100).Error
}

// detachMissingProducts clears the product id of lines whose product was
// deleted after it went into the cart.
func (r *OrderRepository) detachMissingProducts(ctx context.Context, items []models.OrderItem) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID != nil {
			ids = append(ids, *it.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var found []string
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	for i := range items {
		if items[i].ProductID != nil && !known[*items[i].ProductID] {
			items[i].ProductID = nil
		}
	}
	return nil
}

func (r *OrderRepository) withItems(ctx context.Context) *orm.Query {
	return orm.On(r.db).WithContext(ctx).Preload("Items.Product")
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id ASC").Get(&orders)
	return orders, err
}

// FindForUser returns gorm.ErrRecordNotFound when the order belongs to
// another user.
func (r *OrderRepository) FindForUser(ctx context.Context, userID, id string) (models.Order, error) {
	var o models.Order
	err := r.withItems(ctx).Where("id = ? AND user_id = ?", id, userID).First(&o)
	return o, err
}

// ListAll returns every order, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems(ctx).Order("created_at DESC").Order("id ASC").Get(&orders)
	return orders, err
}

func (r *OrderRepository) Find(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := r.withItems(ctx).Where("id = ?", id).First(&o)
	return o, err
}

// MarkFulfilled sets the status and tracking number and reports whether the
// order exists.
func (r *OrderRepository) MarkFulfilled(ctx context.Context, id, tracking string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":          models.OrderFulfilled,
		"tracking_number": tracking,
	}).Error
	return err == nil, err
}

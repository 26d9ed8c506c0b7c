package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/cart"
	"github.com/shashiranjanraj/lodge/app/models"
	_ "github.com/shashiranjanraj/lodge/database/migrations"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *string { return &s }

type fixture struct {
	db     *gorm.DB
	catA   models.Category
	catB   models.Category
	alpha  models.Product
	beta   models.Product
}

// newFixture seeds two categories with one product each.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: testkit.DB(t)}

	f.catA = models.Category{Name: "Apparel", Slug: "a"}
	f.catB = models.Category{Name: "Books", Slug: "b"}
	require.NoError(t, f.db.Create(&f.catA).Error)
	require.NoError(t, f.db.Create(&f.catB).Error)

	f.beta = models.Product{Name: "Beta", Description: "second", Price: dec("20"), CategoryID: f.catB.ID}
	f.alpha = models.Product{Name: "Alpha", Description: "first hoodie", Price: dec("10"), CategoryID: f.catA.ID}
	for _, p := range []*models.Product{&f.beta, &f.alpha} {
		require.NoError(t, f.db.Omit("Category").Create(p).Error)
	}
	return f
}

func (f *fixture) profile(t *testing.T, id, balance string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Profile{ID: id, WalletBalance: dec(balance)}).Error)
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	var p models.Profile
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	return p.WalletBalance
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

// lines is a $40 cart with two distinct products.
func (f *fixture) lines() []cart.Line {
	c := &cart.Cart{}
	c.AddItem(f.alpha, 2)
	c.AddItem(f.beta, 1)
	return c.Lines()
}

func (f *fixture) order(t *testing.T, userID string, created time.Time) models.Order {
	t.Helper()
	o := models.Order{
		UserID:           userID,
		Status:           models.OrderUnfulfilled,
		TotalAmount:      dec("37.55"),
		ShippingProvider: "ups",
		PaymentMethod:    models.PayCrypto,
		CreatedAt:        created,
		Items:            []models.OrderItem{{ProductID: ptr(f.alpha.ID), Quantity: 2, Price: dec("10")}},
	}
	require.NoError(t, f.db.Create(&o).Error)
	return o
}

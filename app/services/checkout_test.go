package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/app/cart"
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/event"
)

func shipping() services.ShippingAddress {
	return services.ShippingAddress{
		Name: "Ada Lovelace", Street: "1 Main St", City: "Austin", State: "TX",
		Zip: "73301", Country: "US", Phone: "+15125550100",
	}
}

func TestShippingCost(t *testing.T) {
	assert.Equal(t, "22.90", services.ShippingCost(1).StringFixed(2))
	assert.Equal(t, "28.25", services.ShippingCost(2).StringFixed(2))
	assert.Equal(t, "33.60", services.ShippingCost(3).StringFixed(2))
}

func TestWalletCheckoutDebitsBalance(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", "100")
	svc := services.NewCheckoutService(f.db)

	var fired []models.Order
	event.Listen(services.EventOrderPlaced, func(_ context.Context, p interface{}) {
		fired = append(fired, p.(models.Order))
	})
	t.Cleanup(event.Flush)

	order, err := svc.PlaceOrder(context.Background(), "u1", services.PlaceOrderInput{
		Lines:            f.lines(),
		Shipping:         shipping(),
		ShippingProvider: "dhl",
		PaymentMethod:    models.PayWallet,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderUnfulfilled, order.Status)
	assert.Equal(t, "28.25", order.ShippingCost.StringFixed(2))
	assert.Equal(t, "68.25", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "31.75", f.balance(t, "u1").StringFixed(2))

	var items []models.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&items).Error)
	assert.Len(t, items, 2)

	var txs []models.Transaction
	require.NoError(t, f.db.Where("user_id = ?", "u1").Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TxPurchase, txs[0].Type)
	assert.Equal(t, models.TxCompleted, txs[0].Status)
	assert.Equal(t, "-68.25", txs[0].Amount.StringFixed(2))
	assert.Equal(t, "Order #"+order.ID, txs[0].Reference)

	require.Len(t, fired, 1)
	assert.Equal(t, order.ID, fired[0].ID)
}

func TestWalletCheckoutInsufficientBalanceWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", "50")
	svc := services.NewCheckoutService(f.db)

	_, err := svc.PlaceOrder(context.Background(), "u1", services.PlaceOrderInput{
		Lines:            f.lines(),
		Shipping:         shipping(),
		ShippingProvider: "usps",
		PaymentMethod:    models.PayWallet,
	})
	assert.ErrorIs(t, err, services.ErrInsufficientBalance)

	assert.Zero(t, f.count(t, &models.Order{}))
	assert.Zero(t, f.count(t, &models.OrderItem{}))
	assert.Zero(t, f.count(t, &models.Transaction{}))
	assert.Equal(t, "50.00", f.balance(t, "u1").StringFixed(2))
}

func TestWalletCheckoutWithoutProfile(t *testing.T) {
	f := newFixture(t)
	svc := services.NewCheckoutService(f.db)

	_, err := svc.PlaceOrder(context.Background(), "newcomer", services.PlaceOrderInput{
		Lines:            f.lines(),
		Shipping:         shipping(),
		ShippingProvider: "usps",
		PaymentMethod:    models.PayWallet,
	})
	assert.ErrorIs(t, err, services.ErrInsufficientBalance)
	assert.Zero(t, f.count(t, &models.Order{}))
}

func TestCardCheckoutKeepsOnlyLast4(t *testing.T) {
	f := newFixture(t)
	svc := services.NewCheckoutService(f.db)

	order, err := svc.PlaceOrder(context.Background(), "u1", services.PlaceOrderInput{
		Lines:            f.lines(),
		Shipping:         shipping(),
		ShippingProvider: "ups",
		PaymentMethod:    models.PayCard,
		Card: &services.CardDetails{
			Number: "4242 4242 4242 4242", Expiry: "12/30", CVV: "123",
			BillingName: "Ada", BillingStreet: "1 Main St", BillingCity: "Austin",
			BillingState: "TX", BillingZip: "73301", BillingCountry: "US",
		},
	})
	require.NoError(t, err)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.NotNil(t, stored.CardLast4)
	assert.Equal(t, "4242", *stored.CardLast4)
	assert.Equal(t, "Austin", *stored.BillingCity)
	assert.Zero(t, f.count(t, &models.Transaction{}))
}

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	svc := services.NewCheckoutService(f.db)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "u1", services.PlaceOrderInput{
		Shipping: shipping(), ShippingProvider: "dhl", PaymentMethod: models.PayCrypto,
	})
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	addr := shipping()
	addr.Zip = "  "
	_, err = svc.PlaceOrder(ctx, "u1", services.PlaceOrderInput{
		Lines: f.lines(), Shipping: addr, ShippingProvider: "fedex", PaymentMethod: models.PayCard,
	})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "shipping.zip")
	assert.Contains(t, verr.Fields, "shipping_provider")
	assert.Contains(t, verr.Fields, "card")

	_, err = svc.PlaceOrder(ctx, "u1", services.PlaceOrderInput{
		Lines: f.lines(), Shipping: shipping(), ShippingProvider: "dhl", PaymentMethod: models.PayCard,
		Card: &services.CardDetails{Number: "4242424242424242"},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "card.cvv")

	assert.Zero(t, f.count(t, &models.Order{}))
}

func TestQuote(t *testing.T) {
	c := &cart.Cart{}
	shipping, total := services.Quote(c.Lines())
	assert.Equal(t, "17.55", shipping.StringFixed(2))
	assert.Equal(t, "17.55", total.StringFixed(2))
}

func TestCheckoutKeepsLinesOfProductsDeletedFromTheCatalog(t *testing.T) {
	f := newFixture(t)
	lines := f.lines()
	ctx := context.Background()
	require.NoError(t, services.NewAdminService(f.db, nil, "").DeleteProduct(ctx, f.beta.ID))

	order, err := services.NewCheckoutService(f.db).PlaceOrder(ctx, "u1", services.PlaceOrderInput{
		Lines:            lines,
		Shipping:         shipping(),
		ShippingProvider: "usps",
		PaymentMethod:    models.PayCrypto,
	})
	require.NoError(t, err)

	got, err := services.NewOrderService(f.db).GetOrder(ctx, "u1", order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	byName := map[string]services.OrderItemView{}
	for _, it := range got.Items {
		byName[it.Name] = it
	}
	require.Contains(t, byName, "Alpha")
	require.Contains(t, byName, "Unknown Product")
	assert.Equal(t, f.alpha.ID, *byName["Alpha"].ProductID)
	assert.Nil(t, byName["Unknown Product"].ProductID)
	assert.Equal(t, "20.00", byName["Unknown Product"].Price.StringFixed(2))
}

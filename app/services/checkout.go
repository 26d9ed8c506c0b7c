package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/cart"
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
	"github.com/shashiranjanraj/lodge/pkg/event"
	"github.com/shashiranjanraj/lodge/pkg/logger"
)

// EventOrderPlaced fires after an order commits. The payload is the
// models.Order.
const EventOrderPlaced = "order.placed"

var (
	shippingBase    = decimal.RequireFromString("17.55")
	shippingPerLine = decimal.RequireFromString("5.35")
)

// ShippingCost is the flat shipping fee for a cart with the given number of
// distinct lines.
func ShippingCost(lines int) decimal.Decimal {
	return shippingBase.Add(shippingPerLine.Mul(decimal.NewFromInt(int64(lines))))
}

type ShippingAddress struct {
	Name    string `json:"name"    validate:"notblank"`
	Street  string `json:"street"  validate:"notblank"`
	City    string `json:"city"    validate:"notblank"`
	State   string `json:"state"   validate:"notblank"`
	Zip     string `json:"zip"     validate:"notblank"`
	Country string `json:"country" validate:"notblank"`
	Phone   string `json:"phone"   validate:"notblank"`
}

// CardDetails is read for validation and the last four digits; the number,
// expiry and CVV are never stored.
type CardDetails struct {
	Number         string `json:"number"          validate:"notblank"`
	Expiry         string `json:"expiry"          validate:"notblank"`
	CVV            string `json:"cvv"             validate:"notblank"`
	BillingName    string `json:"billing_name"    validate:"notblank"`
	BillingStreet  string `json:"billing_street"  validate:"notblank"`
	BillingCity    string `json:"billing_city"    validate:"notblank"`
	BillingState   string `json:"billing_state"   validate:"notblank"`
	BillingZip     string `json:"billing_zip"     validate:"notblank"`
	BillingCountry string `json:"billing_country" validate:"notblank"`
}

func (c CardDetails) last4() string {
	var digits []rune
	for _, r := range c.Number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}

type PlaceOrderInput struct {
	Lines            []cart.Line     `json:"-"`
	Shipping         ShippingAddress `json:"shipping"`
	ShippingProvider string          `json:"shipping_provider" validate:"required,oneof=dhl usps ups"`
	PaymentMethod    string          `json:"payment_method"    validate:"required,oneof=wallet card crypto"`
	Card             *CardDetails    `json:"card"              validate:"required_if=PaymentMethod card"`
}

type CheckoutService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	profiles *repositories.ProfileRepository
	txs      *repositories.TransactionRepository
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		db:       db,
		orders:   repositories.NewOrderRepository(db),
		profiles: repositories.NewProfileRepository(db),
		txs:      repositories.NewTransactionRepository(db),
	}
}

// Quote returns the shipping cost and total for lines.
func Quote(lines []cart.Line) (shipping, total decimal.Decimal) {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	shipping = ShippingCost(len(lines))
	return shipping, subtotal.Add(shipping).Round(2)
}

// PlaceOrder validates in, then writes the order, its items and, for wallet
// payments, the balance debit and purchase transaction in one database
// transaction. On any error nothing is written.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (models.Order, error) {
	if len(in.Lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if in.PaymentMethod != models.PayCard {
		in.Card = nil
	}
	if err := checkInput(in); err != nil {
		return models.Order{}, err
	}

	shipping, total := Quote(in.Lines)

	if in.PaymentMethod == models.PayWallet {
		profile, err := s.profiles.FindOrCreate(ctx, userID)
		if err != nil {
			return models.Order{}, fmt.Errorf("load wallet: %w", err)
		}
		if profile.WalletBalance.LessThan(total) {
			return models.Order{}, ErrInsufficientBalance
		}
	}

	order := newOrder(userID, in, shipping, total)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(ctx, &order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if in.PaymentMethod != models.PayWallet {
			return nil
		}

		ok, err := s.profiles.WithTx(tx).Debit(ctx, userID, total)
		if err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
		if !ok {
			return ErrInsufficientBalance
		}

		purchase := models.Transaction{
			UserID:    userID,
			Type:      models.TxPurchase,
			Amount:    total.Neg(),
			Status:    models.TxCompleted,
			Reference: "Order #" + order.ID,
		}
		if err := s.txs.WithTx(tx).Create(ctx, &purchase); err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			logger.WithCtx(ctx).Error("checkout: place order failed", "user_id", userID, "error", err)
		}
		return models.Order{}, err
	}

	logger.WithCtx(ctx).Info("checkout: order placed",
		"order_id", order.ID, "user_id", userID, "total", total.StringFixed(2), "payment_method", in.PaymentMethod)
	event.Fire(ctx, EventOrderPlaced, order)
	return order, nil
}

func newOrder(userID string, in PlaceOrderInput, shipping, total decimal.Decimal) models.Order {
	o := models.Order{
		UserID:           userID,
		Status:           models.OrderUnfulfilled,
		TotalAmount:      total,
		ShippingCost:     shipping,
		ShippingProvider: in.ShippingProvider,
		PaymentMethod:    in.PaymentMethod,
		ShippingName:     strings.TrimSpace(in.Shipping.Name),
		ShippingStreet:   strings.TrimSpace(in.Shipping.Street),
		ShippingCity:     strings.TrimSpace(in.Shipping.City),
		ShippingState:    strings.TrimSpace(in.Shipping.State),
		ShippingZip:      strings.TrimSpace(in.Shipping.Zip),
		ShippingCountry:  strings.TrimSpace(in.Shipping.Country),
		ShippingPhone:    strings.TrimSpace(in.Shipping.Phone),
	}

	if c := in.Card; c != nil {
		last4 := c.last4()
		o.CardLast4 = &last4
		o.BillingName = strPtr(c.BillingName)
		o.BillingStreet = strPtr(c.BillingStreet)
		o.BillingCity = strPtr(c.BillingCity)
		o.BillingState = strPtr(c.BillingState)
		o.BillingZip = strPtr(c.BillingZip)
		o.BillingCountry = strPtr(c.BillingCountry)
	}

	for _, l := range in.Lines {
		productID := l.ProductID
		o.Items = append(o.Items, models.OrderItem{
			ProductID: &productID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return o
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}

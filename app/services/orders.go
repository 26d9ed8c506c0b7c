package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
)

// OrderItemView is an order line with the product's current name.
type OrderItemView struct {
	ProductID *string         `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderView struct {
	models.Order
	Items []OrderItemView `json:"items"`
}

func orderView(o models.Order) OrderView {
	v := OrderView{Order: o, Items: make([]OrderItemView, 0, len(o.Items))}
	for _, it := range o.Items {
		name := "Unknown Product"
		if it.Product != nil {
			name = it.Product.Name
		}
		v.Items = append(v.Items, OrderItemView{
			ProductID: it.ProductID,
			Name:      name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	v.Order.Items = nil
	return v
}

func orderViews(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView(o))
	}
	return out
}

// OrderService reads a shopper's own orders.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository(db)}
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orderViews(orders), nil
}

// GetOrder returns ErrNotFound for a missing order and for one owned by
// another user.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (OrderView, error) {
	o, err := s.orders.FindForUser(ctx, userID, orderID)
	if err != nil {
		return OrderView{}, notFound(err)
	}
	return orderView(o), nil
}

package controllers

import (
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index GET /api/orders
func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.orders.ListOrders(c.Context(), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Show GET /api/orders/{id}
func (oc *OrderController) Show(c *ctx.Context) {
	o, err := oc.orders.GetOrder(c.Context(), c.UserID(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(o)
}

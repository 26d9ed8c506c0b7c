package controllers

import (
	"github.com/shashiranjanraj/lodge/app/cart"
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

func NewCheckoutController(checkout *services.CheckoutService, orders *services.OrderService) *CheckoutController {
	return &CheckoutController{checkout: checkout, orders: orders}
}

// Place POST /api/checkout places an order for the session cart and empties
// the cart on success.
func (cc *CheckoutController) Place(c *ctx.Context) {
	var in services.PlaceOrderInput
	if !c.DecodeJSON(&in) {
		return
	}

	crt := cart.Load(c.Session())
	in.Lines = crt.Lines()

	order, err := cc.checkout.PlaceOrder(c.Context(), c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}

	crt.Clear()
	if err := storeCart(c, crt); err != nil {
		c.Log().Warn("checkout: cart not cleared", "order_id", order.ID, "error", err)
	}

	view, err := cc.orders.GetOrder(c.Context(), order.UserID, order.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(view)
}

package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type fulfillInput struct {
	TrackingNumber string `json:"tracking_number"`
}

type balanceInput struct {
	Balance *decimal.Decimal `json:"balance" validate:"required"`
}

type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

// Orders GET /api/admin/orders
func (ac *AdminController) Orders(c *ctx.Context) {
	orders, err := ac.admin.ListOrders(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Fulfill POST /api/admin/orders/{id}/fulfill
func (ac *AdminController) Fulfill(c *ctx.Context) {
	var in fulfillInput
	if !c.DecodeJSON(&in) {
		return
	}
	o, err := ac.admin.FulfillOrder(c.Context(), c.Param("id"), in.TrackingNumber)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(o)
}

// Products GET /api/admin/products
func (ac *AdminController) Products(c *ctx.Context) {
	products, err := ac.admin.ListProducts(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// CreateProduct POST /api/admin/products
func (ac *AdminController) CreateProduct(c *ctx.Context) {
	var in services.ProductInput
	if !c.DecodeJSON(&in) {
		return
	}
	in.ID = ""
	p, err := ac.admin.UpsertProduct(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(p)
}

// UpdateProduct PUT /api/admin/products/{id}
func (ac *AdminController) UpdateProduct(c *ctx.Context) {
	var in services.ProductInput
	if !c.DecodeJSON(&in) {
		return
	}
	in.ID = c.Param("id")
	p, err := ac.admin.UpsertProduct(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

// DeleteProduct DELETE /api/admin/products/{id}
func (ac *AdminController) DeleteProduct(c *ctx.Context) {
	if err := ac.admin.DeleteProduct(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Message("Product deleted.")
}

// UploadImage POST /api/admin/products/images (multipart field "image")
func (ac *AdminController) UploadImage(c *ctx.Context) {
	f, hdr, ok := c.FormFile("image")
	if !ok {
		return
	}
	defer f.Close()

	url, err := ac.admin.UploadProductImage(c.Context(), hdr.Filename, f)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(map[string]string{"url": url})
}

// SetBalance PUT /api/admin/wallets/{user_id}
func (ac *AdminController) SetBalance(c *ctx.Context) {
	var in balanceInput
	if !c.BindJSON(&in) {
		return
	}
	p, err := ac.admin.SetWalletBalance(c.Context(), c.Param("user_id"), *in.Balance)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lodge/app/cart"
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type addItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"gte=1,lte=99"`
}

type quantityInput struct {
	Quantity int `json:"quantity" validate:"lte=99"`
}

// cartView is the cart with its derived totals.
type cartView struct {
	Items    []cart.Line     `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func viewCart(c *cart.Cart) cartView {
	v := cartView{Items: c.Lines(), Count: c.Count(), Subtotal: c.Total()}
	if v.Items == nil {
		v.Items = []cart.Line{}
	}
	if !c.Empty() {
		v.Shipping, v.Total = services.Quote(c.Lines())
	}
	return v
}

type CartController struct {
	catalog *services.CatalogService
}

func NewCartController(catalog *services.CatalogService) *CartController {
	return &CartController{catalog: catalog}
}

// Show GET /api/cart
func (cc *CartController) Show(c *ctx.Context) {
	c.Success(viewCart(cart.Load(c.Session())))
}

// Add POST /api/cart/items
func (cc *CartController) Add(c *ctx.Context) {
	var in addItemInput
	if !c.BindJSON(&in) {
		return
	}
	p, err := cc.catalog.GetProduct(c.Context(), in.ProductID)
	if err != nil {
		fail(c, err)
		return
	}

	crt := cart.Load(c.Session())
	crt.AddItem(models.Product{
		UUID:     models.UUID{ID: p.ID},
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}, in.Quantity)
	cc.save(c, crt)
}

// Update PUT /api/cart/items/{id}. A quantity of zero or less removes the line.
func (cc *CartController) Update(c *ctx.Context) {
	var in quantityInput
	if !c.BindJSON(&in) {
		return
	}
	crt := cart.Load(c.Session())
	crt.UpdateQuantity(c.Param("id"), in.Quantity)
	cc.save(c, crt)
}

// Remove DELETE /api/cart/items/{id}
func (cc *CartController) Remove(c *ctx.Context) {
	crt := cart.Load(c.Session())
	crt.RemoveItem(c.Param("id"))
	cc.save(c, crt)
}

// Clear DELETE /api/cart
func (cc *CartController) Clear(c *ctx.Context) {
	crt := cart.Load(c.Session())
	crt.Clear()
	cc.save(c, crt)
}

func (cc *CartController) save(c *ctx.Context, crt *cart.Cart) {
	if err := storeCart(c, crt); err != nil {
		fail(c, err)
		return
	}
	c.Success(viewCart(crt))
}

func storeCart(c *ctx.Context, crt *cart.Cart) error {
	sess := c.Session()
	if err := cart.Store(sess, crt); err != nil {
		return err
	}
	return sess.Save(c.W)
}

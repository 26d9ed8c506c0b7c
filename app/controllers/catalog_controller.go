package controllers

import (
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Index GET /api/products?category=<slug>&q=<text>
func (cc *CatalogController) Index(c *ctx.Context) {
	products, err := cc.catalog.SearchProducts(c.Context(),
		c.DefaultQuery("category", services.AllCategories), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// Show GET /api/products/{id}
func (cc *CatalogController) Show(c *ctx.Context) {
	p, err := cc.catalog.GetProduct(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

// Categories GET /api/categories
func (cc *CatalogController) Categories(c *ctx.Context) {
	cats, err := cc.catalog.ListCategories(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cats)
}

// Package schema is the read-only GraphQL view of the catalog:
//
//	{ products(category: "apple", q: "pro") { id name price category } }
//	{ product(id: "...") { name description image } }
//	{ categories { name slug } }
package schema

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/services"
	lodgegql "github.com/shashiranjanraj/lodge/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(models.Category); ok {
					return c.ID, nil
				}
				return nil, nil
			},
		},
		"name":        &graphql.Field{Type: graphql.String},
		"slug":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"image":         &graphql.Field{Type: graphql.String},
		"category":      &graphql.Field{Type: graphql.String},
		"category_slug": &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{
			Type:        graphql.String,
			Description: "Decimal price with two places.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(services.ProductView); ok {
					return v.Price.StringFixed(2), nil
				}
				return nil, nil
			},
		},
	},
})

// New builds the catalog schema backed by catalog.
func New(catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: services.AllCategories},
					"q":        &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					q, _ := p.Args["q"].(string)
					return catalog.SearchProducts(p.Context, category, q)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					v, err := catalog.GetProduct(p.Context, id)
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return v, nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cats, err := catalog.ListCategories(p.Context)
					if err != nil {
						return nil, err
					}
					return cats, nil
				},
			},
		},
	})
	return lodgegql.NewSchema(query)
}

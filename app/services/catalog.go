package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
)

// AllCategories is the catalog filter value that matches every product.
const AllCategories = "all"

// ProductView is a product as shoppers see it.
type ProductView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image"`
	Category     string          `json:"category"`
	CategorySlug string          `json:"category_slug"`
}

func viewOf(p models.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	if p.Category != nil {
		v.Category = p.Category.Name
		v.CategorySlug = p.Category.Slug
	}
	return v
}

// CatalogService is the read-only storefront view of products.
type CatalogService struct {
	repo *repositories.CatalogRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{repo: repositories.NewCatalogRepository(db)}
}

// ListProducts returns every product, or only those in the category with
// the given slug. An empty slug or "all" matches every category.
func (s *CatalogService) ListProducts(ctx context.Context, categorySlug string) ([]ProductView, error) {
	return s.SearchProducts(ctx, categorySlug, "")
}

// SearchProducts is ListProducts narrowed by a case-insensitive match of q
// against name and description.
func (s *CatalogService) SearchProducts(ctx context.Context, categorySlug, q string) ([]ProductView, error) {
	slug := strings.TrimSpace(categorySlug)
	if strings.EqualFold(slug, AllCategories) {
		slug = ""
	}

	products, err := s.repo.ListProducts(ctx, repositories.ProductFilter{CategorySlug: slug, Search: q})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, viewOf(p))
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (ProductView, error) {
	p, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return ProductView{}, notFound(err)
	}
	return viewOf(p), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

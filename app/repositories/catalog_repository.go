package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/cache"
	"github.com/shashiranjanraj/lodge/pkg/orm"
)

const (
	CategoriesCacheKey = "catalog:categories"
	categoriesTTL      = 10 * time.Minute
)

// ProductFilter narrows ListProducts. Empty fields match everything.
type ProductFilter struct {
	CategorySlug string
	Search       string
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListProducts returns products that have a category, ordered by name then
// id, with the category preloaded.
func (r *CatalogRepository) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := orm.On(r.db).WithContext(ctx).
		Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Preload("Category")

	if f.CategorySlug != "" {
		q = q.Where("categories.slug = ?", f.CategorySlug)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
	}

	var products []models.Product
	err := q.Order("products.name ASC").Order("products.id ASC").Get(&products)
	return products, err
}

// ListNewest returns every product, newest first, for the admin console.
func (r *CatalogRepository) ListNewest(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := orm.On(r.db).WithContext(ctx).Preload("Category").
		Order("created_at DESC").Order("id ASC").Get(&products)
	return products, err
}

func (r *CatalogRepository) FindProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := orm.On(r.db).WithContext(ctx).
		Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Where("products.id = ?", id).
		First(&p)
	return p, err
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(p).Error
}

// UpdateProduct saves every editable column of p. It reports whether a row
// with p.ID existed.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *models.Product) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"category_id": p.CategoryID,
	}).Error
	return err == nil, err
}

// DeleteProduct reports whether a row was removed.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return res.RowsAffected > 0, res.Error
}

// Categories returns all categories ordered by name, served from the cache
// when possible.
func (r *CatalogRepository) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := orm.On(r.db).WithContext(ctx).Order("name ASC").Cache(CategoriesCacheKey, categoriesTTL, &cats)
	return cats, err
}

func (r *CatalogRepository) FindCategory(ctx context.Context, id string) (models.Category, error) {
	var c models.Category
	err := orm.On(r.db).WithContext(ctx).Where("id = ?", id).First(&c)
	return c, err
}

// ForgetCategories drops the cached category list.
func (r *CatalogRepository) ForgetCategories() {
	_ = cache.Forget(CategoriesCacheKey)
}

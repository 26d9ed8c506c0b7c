package seeders

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

var categories = []models.Category{
	{Name: "Apple Products", Slug: "apple", Description: "Latest devices & accessories"},
	{Name: "Designer Clothes", Slug: "clothes", Description: "Fashion from top brands"},
	{Name: "Fragrances", Slug: "fragrances", Description: "Premium scents & colognes"},
	{Name: "Moissanite Jewelry", Slug: "jewelry", Description: "Stunning rings & pendants"},
}

// SeedCategories inserts the storefront categories that are missing.
func SeedCategories(db *gorm.DB) error {
	for _, c := range categories {
		c := c
		if err := db.Where(models.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

type sample struct {
	category    string
	name        string
	description string
	price       string
}

var samples = []sample{
	{"apple", "AirPods Pro 2", "Active noise cancellation with USB-C charging case.", "89.99"},
	{"apple", "Apple Watch Ultra 2", "49mm titanium case with ocean band.", "189.00"},
	{"clothes", "Monogram Hoodie", "Heavyweight cotton hoodie with embroidered logo.", "74.50"},
	{"clothes", "Runner Sneakers", "Mesh and suede low-top trainers.", "109.00"},
	{"fragrances", "Aventus Eau de Parfum", "Pineapple, birch and musk. 100ml.", "64.00"},
	{"fragrances", "Sauvage Elixir", "Spiced lavender and amber. 60ml.", "58.00"},
	{"jewelry", "Moissanite Tennis Chain", "5mm VVS moissanite set in sterling silver.", "149.00"},
	{"jewelry", "Cuban Link Bracelet", "8mm iced cuban link with box clasp.", "99.00"},
}

// SeedProducts adds a few sample products per category when the catalog is
// empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range samples {
		var cat models.Category
		if err := db.Where("slug = ?", s.category).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		p := models.Product{
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			CategoryID:  cat.ID,
		}
		if err := db.Omit("Category").Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

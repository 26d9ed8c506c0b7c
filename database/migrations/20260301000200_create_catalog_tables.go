package migrations

import (
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000200_create_catalog_tables", &CreateCatalogTables{})
}

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "categories")
}

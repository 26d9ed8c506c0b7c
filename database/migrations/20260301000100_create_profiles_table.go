package migrations

import (
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000100_create_profiles_table", &CreateProfilesTable{})
}

type CreateProfilesTable struct{}

func (m *CreateProfilesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Profile{})
}

func (m *CreateProfilesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("profiles")
}

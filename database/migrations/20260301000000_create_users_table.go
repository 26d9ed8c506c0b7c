package migrations

import (
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
}

// CreateUsersTable holds accounts for the local auth gateway. Deployments on
// Supabase leave it empty.
type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&auth.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

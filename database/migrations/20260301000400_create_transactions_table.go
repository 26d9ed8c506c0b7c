package migrations

import (
	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000400_create_transactions_table", &CreateTransactionsTable{})
}

type CreateTransactionsTable struct{}

func (m *CreateTransactionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Transaction{})
}

func (m *CreateTransactionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("transactions")
}

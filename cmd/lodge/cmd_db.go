package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/database/seeders"
	"github.com/shashiranjanraj/lodge/pkg/database"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := logger.Setup(); err != nil {
		return err
	}
	return database.Connect()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		n, err := migration.New(database.DB, os.Stdout).Run()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Nothing to migrate.")
		}
		return nil
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		n, err := migration.New(database.DB, os.Stdout).Rollback()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Nothing to roll back.")
		}
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		rows, err := migration.New(database.DB, os.Stdout).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
		for _, s := range rows {
			ran, batch := "No", "-"
			if s.Ran {
				ran, batch = "Yes", fmt.Sprint(s.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
		}
		return w.Flush()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return seeders.RunAll(database.DB, os.Stdout)
	},
}

// wallet:set settles a deposit or withdrawal by hand.
var walletSetCmd = &cobra.Command{
	Use:   "wallet:set <user_id> <balance>",
	Short: "Overwrite a user's wallet balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("balance %q: %w", args[1], err)
		}
		if err := bootDB(); err != nil {
			return err
		}

		admin := services.NewAdminService(database.DB, nil, config.ProductImagePrefix())
		p, err := admin.SetWalletBalance(cmd.Context(), args[0], balance)
		if err != nil {
			return err
		}
		fmt.Printf("%s balance is now %s\n", p.ID, p.WalletBalance.StringFixed(2))
		return nil
	},
}

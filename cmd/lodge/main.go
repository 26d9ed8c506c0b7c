// Command lodge runs the storefront API and its maintenance tasks.
//
//	lodge serve             # start the HTTP server
//	lodge migrate           # run pending migrations
//	lodge migrate:rollback
//	lodge migrate:status
//	lodge seed              # load the demo catalog
//	lodge route:list
//	lodge wallet:set <user_id> <balance>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/lodge/database/migrations"
	_ "github.com/shashiranjanraj/lodge/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "lodge",
	Short:         "Lodge storefront API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(walletSetCmd)
}

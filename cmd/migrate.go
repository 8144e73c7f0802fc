package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	Run: func(cmd *cobra.Command, args []string) {
		migrateDB()
	},
}

func migrateDB() {
	db, err := openDB()
	if err != nil {
		log.Fatal(err)
	}
	db.Close()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

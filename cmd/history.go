package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"github.com/tattybubutashtanova/histmatch/models"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded matches, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			runs, err := models.ListRuns(db, models.LocalScope, historyLimit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 5, 0, 3, ' ', 0)
			fmt.Fprintln(w, "WHEN\tSOURCE\tREFERENCE\tOUTPUT\tBEFORE\tAFTER\t")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%.4f\t\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.Reference, r.Output, r.Before, r.After,
				)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 20, "number of runs to show")
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/models"
)

// refsCmd represents the refs command
var refsCmd = &cobra.Command{
	Use:     "refs",
	Aliases: []string{"ref"},
	Short:   "Manage saved reference histograms",
}

var refsAddCmd = &cobra.Command{
	Use:   "add <name> <image>",
	Short: "Save the histogram of an image under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := openImage(args[1])
		if err != nil {
			return err
		}
		return withDB(func(db *gorm.DB) error {
			r, err := models.SaveReference(db, models.LocalScope, args[0], imp.ComputeHistogram(img))
			if err != nil {
				return err
			}
			fmt.Printf("Saved reference %q (%d pixels)\n", r.Name, r.Pixels)
			return nil
		})
	},
}

var refsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved references",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			refs, err := models.ListReferences(db, models.LocalScope)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Println("No saved references yet. Use `histmatch refs add` to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 5, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tPIXELS\tRANGE\tUPDATED\t")
			for _, r := range refs {
				h, err := r.Histogram()
				if err != nil {
					return err
				}
				lo, hi, _ := h.Bounds()
				fmt.Fprintf(w, "%s\t%d\t%d-%d\t%s\t\n", r.Name, r.Pixels, lo, hi, r.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

var refsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved reference",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			r, err := models.FindReference(db, models.LocalScope, args[0])
			if gorm.IsRecordNotFoundError(err) {
				return fmt.Errorf("no such reference (%q)", args[0])
			} else if err != nil {
				return err
			}
			return r.Delete(db)
		})
	},
}

// Runs fn in a transaction on the configured database.
func withDB(fn func(*gorm.DB) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Transaction(fn)
}

func init() {
	rootCmd.AddCommand(refsCmd)
	refsCmd.AddCommand(refsAddCmd, refsListCmd, refsRemoveCmd)
}

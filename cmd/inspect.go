package cmd

import (

	"github.com/spf13/cobra"
	"github.com/tattybubutashtanova/histmatch/imp"
)

var (
	inspectRef string
	inspectCSV string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <source> [<reference>]",
	Short: "Show how the levels of an image would be matched",
	Long: `Prints, for every gray level present in <source>, its share of the pixels, its
cumulative distribution and the reference level it would be mapped to.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkTarget(inspectRef, args); err != nil {
			return err
		}

		src, err := openImage(args[0])
		if err != nil {
			return err
		}
		tgt, err := resolveTarget(inspectRef, args)
		if err != nil {
			return err
		}
		rep, err := imp.NewReport(imp.ComputeHistogram(src), tgt.hist)
		if err != nil {
			return err
		}
		if inspectCSV != "" {
			return writeReportCSV(inspectCSV, rep)
		}
		return rep.WriteTable(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectRef, "ref", "r", "", "name of a saved reference")
	inspectCmd.Flags().StringVar(&inspectCSV, "csv", "", "write the full report as CSV (- for stdout)")
}

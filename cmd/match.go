package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/models"
)

var (
	matchOut    string
	matchRef    string
	matchCSV    string
	matchRecord bool
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <source> [<reference>]",
	Short: "Match the histogram of an image to a reference image",
	Long: `Remaps the gray levels of <source> so that its histogram matches the one of
<reference>, or of the reference saved under the name given with --ref.
Images can be files or http(s) URLs; color images are converted to grayscale.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkTarget(matchRef, args); err != nil {
			return err
		}
		return runMatch(args)
	},
}

// A match target: what the source gets matched against.
type target struct {
	label string
	hist  imp.Histogram
}

// Exactly one of a reference image and a reference name must be given.
var (
	errMissingTarget = errors.New("missing reference: give a reference image or --ref <name>")
	errTwoTargets    = errors.New("give either a reference image or --ref <name>, not both")
)

func checkTarget(refName string, args []string) error {
	switch {
	case refName == "" && len(args) < 2:
		return errMissingTarget
	case refName != "" && len(args) > 1:
		return errTwoTargets
	}
	return nil
}

func resolveTarget(refName string, args []string) (target, error) {
	if refName == "" {
		ref, err := openImage(args[1])
		if err != nil {
			return target{}, err
		}
		return target{label: args[1], hist: imp.ComputeHistogram(ref)}, nil
	}

	db, err := openDB()
	if err != nil {
		return target{}, err
	}
	defer db.Close()
	ref, h, err := loadReference(db, refName)
	if err != nil {
		return target{}, err
	}
	return target{label: "@" + ref.Name, hist: h}, nil
}

func runMatch(args []string) error {
	src, err := openImage(args[0])
	if err != nil {
		return err
	}
	tgt, err := resolveTarget(matchRef, args)
	if err != nil {
		return err
	}

	out, lut, err := imp.MatchHistogram(src, tgt.hist)
	if err != nil {
		return err
	}
	if err := saveImage(matchOut, out); err != nil {
		return err
	}

	rep := &imp.Report{Source: imp.ComputeHistogram(src), Reference: tgt.hist, LUT: lut}
	fmt.Printf("CDF distance to %s: %.4f -> %.4f\n", tgt.label, rep.Before(), rep.After())

	if matchCSV != "" {
		if err := writeReportCSV(matchCSV, rep); err != nil {
			return err
		}
	}
	if matchRecord {
		return recordRun(args[0], tgt.label, matchOut, rep)
	}
	return nil
}

func writeReportCSV(filename string, rep *imp.Report) error {
	if filename == "-" {
		return rep.WriteCSV(os.Stdout)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rep.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}

func recordRun(source, reference, output string, rep *imp.Report) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	run := models.NewRun(models.LocalScope, source, reference, output, rep)
	return models.RecordRun(db, &run)
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "matched.png", "output image (format from extension)")
	matchCmd.Flags().StringVarP(&matchRef, "ref", "r", "", "name of a saved reference")
	matchCmd.Flags().StringVar(&matchCSV, "csv", "", "write histograms, CDFs and lookup table as CSV (- for stdout)")
	matchCmd.Flags().BoolVar(&matchRecord, "record", false, "record the run in the history")
}

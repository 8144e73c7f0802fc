package imp

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// A Report holds the intermediate data of a histogram match.
type Report struct {
	Source    Histogram
	Reference Histogram
	LUT       LUT
}

// NewReport builds the matching LUT between src and ref and keeps both
// histograms along with it.
func NewReport(src, ref Histogram) (*Report, error) {
	lut, err := BuildLUT(src, ref)
	if err != nil {
		return nil, err
	}
	return &Report{Source: src, Reference: ref, LUT: lut}, nil
}

// Matched returns the histogram of the matched image.
func (r *Report) Matched() Histogram {
	return r.LUT.Transform(r.Source)
}

// Before is the CDF distance between the source and the reference.
func (r *Report) Before() float64 {
	return CDFDistance(r.Source, r.Reference)
}

// After is the CDF distance between the matched image and the reference.
func (r *Report) After() float64 {
	return CDFDistance(r.Matched(), r.Reference)
}

var reportHeader = []string{"level", "src_density", "src_cdf", "ref_density", "ref_cdf", "lut"}

// WriteCSV writes one row per intensity level.
func (r *Report) WriteCSV(w io.Writer) error {
	sd, sc := r.Source.Density(), r.Source.CDF()
	rd, rc := r.Reference.Density(), r.Reference.CDF()

	cw := csv.NewWriter(w)
	cw.Write(reportHeader)
	for i := 0; i < Levels; i++ {
		cw.Write([]string{
			strconv.Itoa(i),
			strconv.FormatFloat(sd[i], 'g', -1, 64),
			strconv.FormatFloat(sc[i], 'g', -1, 64),
			strconv.FormatFloat(rd[i], 'g', -1, 64),
			strconv.FormatFloat(rc[i], 'g', -1, 64),
			strconv.Itoa(int(r.LUT[i])),
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes a human readable table of the populated source levels.
func (r *Report) WriteTable(w io.Writer) error {
	sd, sc := r.Source.Density(), r.Source.CDF()
	rc := r.Reference.CDF()

	tw := tabwriter.NewWriter(w, 5, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tSRC %\tSRC CDF\tLUT\tREF CDF\t")
	for i := 0; i < Levels; i++ {
		if r.Source.Counts[i] == 0 {
			continue
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%.4f\t%d\t%.4f\t\n", i, sd[i]*100, sc[i], r.LUT[i], rc[r.LUT[i]])
	}
	fmt.Fprintf(tw, "\nCDF distance: %.4f -> %.4f\n", r.Before(), r.After())
	return tw.Flush()
}

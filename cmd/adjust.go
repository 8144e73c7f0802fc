package cmd

import (
	"image"

	"github.com/spf13/cobra"
	"github.com/tattybubutashtanova/histmatch/imp"
)

// Builds a command applying a point operation to a single image.
func pointCommand(use, short, defaultOut string, op func(image.Image) (*image.Gray, error)) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   use + " <source>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openImage(args[0])
			if err != nil {
				return err
			}
			res, err := op(src)
			if err != nil {
				return err
			}
			return saveImage(out, res)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", defaultOut, "output image (format from extension)")
	return c
}

func init() {
	rootCmd.AddCommand(
		pointCommand("equalize", "Equalize the histogram of an image", "equalized.png", imp.Equalize),
		pointCommand("stretch", "Stretch the gray levels of an image over the whole range", "stretched.png", imp.Stretch),
	)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nstego/pkg/imagecodec"
	"nstego/pkg/jpegstego"
	"nstego/pkg/pixelstego"
	"nstego/pkg/zwctext"
)

// CapacityCommand reports the usable-byte capacity of a carrier without
// embedding anything, per §4.10's pre-flight checks.
func CapacityCommand() *cobra.Command {
	var imagePath, jpegPath, coverPath string
	var bitDepth int8
	var useChroma bool

	cmd := &cobra.Command{
		Use:     "capacity",
		Example: "nstego capacity --image source.png --bit-depth 2",
		Short:   "Report the embedding capacity of an image, JPEG, or text cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case imagePath != "":
				f, err := os.Open(imagePath)
				if err != nil {
					return err
				}
				defer f.Close()
				cover, _, err := imagecodec.Decode(f)
				if err != nil {
					return err
				}
				bytes := pixelstego.Capacity(cover.Bounds().Dx(), cover.Bounds().Dy(), byte(bitDepth))
				fmt.Printf("%d bytes\n", bytes)
			case jpegPath != "":
				raw, err := os.ReadFile(jpegPath)
				if err != nil {
					return err
				}
				coeffs, err := imagecodec.ExtractCoefficients(raw)
				if err != nil {
					return err
				}
				fmt.Printf("%d bytes\n", jpegstego.Capacity(coeffs, useChroma)/8)
			case coverPath != "":
				raw, err := os.ReadFile(coverPath)
				if err != nil {
					return err
				}
				fmt.Printf("%d bytes (heuristic)\n", zwctext.CapacityHeuristic(string(raw)))
			default:
				return fmt.Errorf("one of --image, --jpeg, or --cover is required")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Report pixel LSB capacity of this image")
	cmd.Flags().StringVar(&jpegPath, "jpeg", "", "Report DCT coefficient capacity of this JPEG")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Report zero-width character capacity heuristic of this text file")
	cmd.Flags().Int8Var(&bitDepth, "bit-depth", 1, "Bit depth to assume for --image")
	cmd.Flags().BoolVar(&useChroma, "use-chroma", false, "Whether to count chroma components for --jpeg")

	return cmd
}

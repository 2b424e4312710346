package cli

import (
	"github.com/spf13/cobra"
)

// RootCommand assembles the full nstego cobra tree: image/jpeg/text
// steganography, a capacity report, and the HTTP server, in the shape the
// teacher's individual *Commands() builders implied but never wired to a
// root command of their own.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nstego",
		Short: "Steganography application written in Go",
	}

	root.AddCommand(ImageCommands(), JpegCommands(), TextCommands(), CapacityCommand(), ServeAppCommand())
	return root
}

package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nstego/pkg/model"
)

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func NewSpinner() *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond)
}

var warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()

// printWarnings reports the soft capacity/policy warnings EmbedPayload
// collects in non-strict mode, one per line, with the "warning:" label
// picked out in bold yellow.
func printWarnings(warnings []model.Warning) {
	for _, w := range warnings {
		fmt.Printf("%s %s: %s\n", warningLabel("warning:"), w.Code, w.Message)
	}
}

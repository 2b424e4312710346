package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nstego/pkg/config"
	"nstego/pkg/model"
	"nstego/pkg/zwctext"
)

func TextCommands() *cobra.Command {
	textCmd := &cobra.Command{
		Use:     "text",
		Short:   "Performs zero-width character steganography operations on text",
		Example: "nstego text embed --cover cover.txt --message \"hello\" --output-file stego.txt",
	}

	textCmd.AddCommand(embedTextCommand(), extractTextCommand(), detectTextCommand())
	return textCmd
}

func embedTextCommand() *cobra.Command {
	var coverFile, outputFile, message, password string
	var distributed, strictCapacity bool

	cmd := &cobra.Command{
		Use:     "embed",
		Example: "nstego text embed --cover cover.txt --message \"hello\" --output-file stego.txt",
		Short:   "Embed a message into cover text using zero-width characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, err := os.ReadFile(coverFile)
			if err != nil {
				return err
			}

			cfg := config.TextEncodeConfig{Distributed: distributed, Password: password, StrictCapacity: strictCapacity}
			warnings, stegaText, err := zwctext.EmbedPayload(string(cover), model.Payload{Type: model.PayloadTypeText, Bytes: []byte(message)}, cfg)
			if err != nil {
				return err
			}
			printWarnings(warnings)

			if err := os.WriteFile(outputFile, []byte(stegaText), 0664); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&coverFile, "cover", "", "File containing the cover text")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "Name for the generated stego text file")
	cmd.Flags().StringVar(&message, "message", "", "Message to hide")
	cmd.Flags().StringVar(&password, "password", "", "Password to encrypt the message with before embedding")
	cmd.Flags().BoolVar(&distributed, "distributed", false, "Scatter the hidden characters at natural break points instead of appending them")
	cmd.Flags().BoolVar(&strictCapacity, "strict-capacity", true, "Fail instead of warning when the payload exceeds the configured maximum")

	MarkFlagsRequired(cmd, "cover", "output-file", "message")

	return cmd
}

func extractTextCommand() *cobra.Command {
	var sourceFile, password string

	cmd := &cobra.Command{
		Use:     "extract",
		Example: "nstego text extract --source stego.txt",
		Short:   "Extract a previously embedded message from stego text",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(sourceFile)
			if err != nil {
				return err
			}
			payload, err := zwctext.ExtractPayload(zwctext.AsText(string(raw)), password, nil)
			if err != nil {
				return err
			}
			fmt.Println(string(payload.Bytes))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFile, "source", "", "File containing the stego text")
	cmd.Flags().StringVar(&password, "password", "", "Password the message was encrypted with")

	MarkFlagsRequired(cmd, "source")

	return cmd
}

func detectTextCommand() *cobra.Command {
	var sourceFile string

	cmd := &cobra.Command{
		Use:     "detect",
		Example: "nstego text detect --source maybe-stego.txt",
		Short:   "Check whether text carries a hidden zero-width payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(sourceFile)
			if err != nil {
				return err
			}
			fmt.Println(zwctext.HasHiddenData(zwctext.AsText(string(raw))))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFile, "source", "", "File containing the text to inspect")
	MarkFlagsRequired(cmd, "source")

	return cmd
}

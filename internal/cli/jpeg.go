package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/jpegstego"
	"nstego/pkg/model"
)

func JpegCommands() *cobra.Command {
	jpegCmd := &cobra.Command{
		Use:     "jpeg",
		Short:   "Performs DCT coefficient steganography operations on JPEGs",
		Example: "nstego jpeg embed --jpeg source.jpg --output-file output.jpg --text \"hello\"",
	}

	jpegCmd.AddCommand(embedJpegCommand(), extractJpegCommand())
	return jpegCmd
}

type jpegOpts struct {
	sourceJpeg     string
	outputJpeg     string
	text           string
	file           string
	useChroma      bool
	password       string
	strictCapacity bool
}

func embedJpegCommand() *cobra.Command {
	opts := jpegOpts{}

	cmd := &cobra.Command{
		Use:     "embed",
		Example: "nstego jpeg embed --jpeg source.jpg --output-file output.jpg --text \"hello\"",
		Short:   "Embed a message or file into a JPEG's DCT coefficients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return EmbedJpeg(opts)
		},
	}

	cmd.Flags().StringVar(&opts.sourceJpeg, "jpeg", "", "Cover JPEG to embed data into")
	cmd.Flags().StringVar(&opts.outputJpeg, "output-file", "", "Name for the generated output JPEG")
	cmd.Flags().StringVar(&opts.text, "text", "", "Text message to embed")
	cmd.Flags().StringVar(&opts.file, "file", "", "File to embed, instead of --text")
	cmd.Flags().BoolVar(&opts.useChroma, "use-chroma", false, "Also visit chroma components, not just luminance")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password to encrypt the payload with before embedding")
	cmd.Flags().BoolVar(&opts.strictCapacity, "strict-capacity", true, "Fail instead of warning when the payload exceeds usable coefficient capacity")

	MarkFlagsRequired(cmd, "jpeg", "output-file")

	return cmd
}

func EmbedJpeg(opts jpegOpts) error {
	raw, err := os.ReadFile(opts.sourceJpeg)
	if err != nil {
		return err
	}
	coeffs, err := imagecodec.ExtractCoefficients(raw)
	if err != nil {
		return err
	}

	payload := model.Payload{Type: model.PayloadTypeText, Bytes: []byte(opts.text)}
	if opts.file != "" {
		content, err := os.ReadFile(opts.file)
		if err != nil {
			return err
		}
		payload = model.Payload{Type: model.PayloadTypeBinary, Bytes: content}
	}

	cfg := config.JpegEncodeConfig{
		UseChroma:      opts.useChroma,
		Password:       opts.password,
		StrictCapacity: opts.strictCapacity,
	}

	s := NewSpinner()
	s.Prefix = "Embedding payload into coefficients "
	s.Start()
	warnings, err := jpegstego.EmbedPayload(coeffs, payload, cfg)
	s.Stop()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	encoded, err := imagecodec.EncodeFromCoefficients(coeffs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outputJpeg, encoded, 0664); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", opts.outputJpeg)
	return nil
}

func extractJpegCommand() *cobra.Command {
	opts := jpegOpts{}
	var outputFile string

	cmd := &cobra.Command{
		Use:     "extract",
		Example: "nstego jpeg extract --jpeg encoded.jpg",
		Short:   "Extract a previously embedded message or file from a JPEG's DCT coefficients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExtractJpeg(opts, outputFile)
		},
	}

	cmd.Flags().StringVar(&opts.sourceJpeg, "jpeg", "", "JPEG to extract data from")
	cmd.Flags().BoolVar(&opts.useChroma, "use-chroma", false, "Whether chroma components were visited during embedding")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password the payload was encrypted with")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "File to write a binary payload to; printed to stdout if omitted and the payload is text")

	MarkFlagsRequired(cmd, "jpeg")

	return cmd
}

func ExtractJpeg(opts jpegOpts, outputFile string) error {
	raw, err := os.ReadFile(opts.sourceJpeg)
	if err != nil {
		return err
	}
	coeffs, err := imagecodec.ExtractCoefficients(raw)
	if err != nil {
		return err
	}

	cfg := config.JpegEncodeConfig{UseChroma: opts.useChroma, Password: opts.password}
	payload, err := jpegstego.ExtractPayload(coeffs, cfg, nil)
	if err != nil {
		return err
	}

	if payload.Type == model.PayloadTypeText && outputFile == "" {
		fmt.Println(string(payload.Bytes))
		return nil
	}
	if outputFile == "" {
		outputFile = "decoded.bin"
	}
	if err := os.WriteFile(outputFile, payload.Bytes, 0664); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outputFile)
	return nil
}

package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"nstego/pkg/config"
	"nstego/pkg/imagecodec"
	"nstego/pkg/model"
	"nstego/pkg/multiframe"
	"nstego/pkg/pixelstego"
)

var pngCompressionMapping = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

func ImageCommands() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:     "image",
		Short:   "Performs pixel LSB steganography operations on images",
		Example: "nstego image embed --image source.png --output-file output.png --text \"hello\"",
	}

	imageCmd.AddCommand(embedImageCommand(), extractImageCommand())
	return imageCmd
}

type imageOpts struct {
	sourceImage    string
	outputImage    string
	text           string
	file           string
	bitDepth       int8
	pngCompression string
	password       string
	strictCapacity bool
	frameMode      string
	frameIndex     int
}

func (o imageOpts) toEncodeConfig() config.ImageEncodeConfig {
	mappedCompression, found := pngCompressionMapping[o.pngCompression]
	if !found {
		mappedCompression = png.DefaultCompression
	}
	return config.ImageEncodeConfig{
		BitDepth:            byte(o.bitDepth),
		PngCompressionLevel: mappedCompression,
		Password:            o.password,
		StrictCapacity:      o.strictCapacity,
	}
}

func (o imageOpts) toMultiFrameConfig() config.MultiFrameConfig {
	mode := config.ParseFrameMode(o.frameMode)
	return config.MultiFrameConfig{
		ImageEncodeConfig: o.toEncodeConfig(),
		Mode:              mode,
		FrameIndex:        o.frameIndex,
	}
}

func embedImageCommand() *cobra.Command {
	opts := imageOpts{}

	cmd := &cobra.Command{
		Use:     "embed",
		Example: "nstego image embed --image source.png --output-file output.png --text \"hello\"",
		Short:   "Embed a message or file into an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return EmbedImage(opts)
		},
	}

	cmd.Flags().StringVar(&opts.sourceImage, "image", "", "Cover image to embed data into")
	cmd.Flags().StringVar(&opts.outputImage, "output-file", "", "Name for the generated output image")
	cmd.Flags().StringVar(&opts.text, "text", "", "Text message to embed")
	cmd.Flags().StringVar(&opts.file, "file", "", "File to embed, instead of --text")
	cmd.Flags().Int8Var(&opts.bitDepth, "bit-depth", 1, "Least significant bits to use per channel, 1-4")
	cmd.Flags().StringVar(&opts.pngCompression, "png-compression", "default", "Compression for output png. Options are default, none, fast, best")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password to encrypt the payload with before embedding")
	cmd.Flags().BoolVar(&opts.strictCapacity, "strict-capacity", true, "Fail instead of warning when the payload exceeds carrier capacity")
	cmd.Flags().StringVar(&opts.frameMode, "frame-mode", "first", "For animated GIF/multi-page TIFF covers: first, all, or split")
	cmd.Flags().IntVar(&opts.frameIndex, "frame-index", 0, "Ignored when embedding: --frame-mode=first always embeds into the first usable frame")

	MarkFlagsRequired(cmd, "image", "output-file")

	return cmd
}

func EmbedImage(opts imageOpts) error {
	raw, err := os.ReadFile(opts.sourceImage)
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

	s := NewSpinner()
	s.Prefix = "Embedding payload "
	s.Start()

	if fs, ferr := imagecodec.DecodeFrames(bytes.NewReader(raw)); ferr == nil {
		mfCfg := opts.toMultiFrameConfig()
		frames := make([]*image.RGBA, len(fs.Frames))
		for i, f := range fs.Frames {
			frames[i] = f.Image
		}
		warnings, err := multiframe.Embed(frames, payload, mfCfg)
		s.Stop()
		if err != nil {
			return err
		}
		for i := range fs.Frames {
			fs.Frames[i].Image = frames[i]
		}
		printWarnings(warnings)
		encoded, err := imagecodec.EncodeFrames(fs)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.outputImage, encoded, 0664); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", opts.outputImage)
		return nil
	}

	cover, _, err := imagecodec.Decode(bytes.NewReader(raw))
	if err != nil {
		s.Stop()
		return err
	}

	cfg := opts.toEncodeConfig()
	warnings, err := pixelstego.EmbedPayload(cover, payload, cfg)
	s.Stop()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	encoded, err := imagecodec.Encode(cover, imagecodec.FormatPNG, imagecodec.EncodeOptions{PngCompressionLevel: cfg.PngCompressionLevel})
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outputImage, encoded, 0664); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", opts.outputImage)
	return nil
}

func extractImageCommand() *cobra.Command {
	opts := imageOpts{}
	var outputFile string

	cmd := &cobra.Command{
		Use:     "extract",
		Example: "nstego image extract --image encoded.png",
		Short:   "Extract a previously embedded message or file from an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExtractImage(opts, outputFile)
		},
	}

	cmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to extract data from")
	cmd.Flags().Int8Var(&opts.bitDepth, "bit-depth", 1, "Least significant bits per channel used during embedding")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password the payload was encrypted with")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "File to write a binary payload to; printed to stdout if omitted and the payload is text")
	cmd.Flags().StringVar(&opts.frameMode, "frame-mode", "first", "For animated GIF/multi-page TIFF covers: first, all, or split")
	cmd.Flags().IntVar(&opts.frameIndex, "frame-index", 0, "Frame to read from when --frame-mode=first")

	MarkFlagsRequired(cmd, "image")

	return cmd
}

func ExtractImage(opts imageOpts, outputFile string) error {
	raw, err := os.ReadFile(opts.sourceImage)
	if err != nil {
		return err
	}

	var payload model.Payload
	if fs, ferr := imagecodec.DecodeFrames(bytes.NewReader(raw)); ferr == nil {
		frames := make([]*image.RGBA, len(fs.Frames))
		for i, f := range fs.Frames {
			frames[i] = f.Image
		}
		payload, err = multiframe.Extract(frames, opts.toMultiFrameConfig(), opts.password, nil)
	} else {
		var cover *image.RGBA
		cover, _, err = imagecodec.Decode(bytes.NewReader(raw))
		if err == nil {
			payload, err = pixelstego.ExtractPayload(cover, byte(opts.bitDepth), opts.password, nil)
		}
	}
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

package config

// JpegEncodeConfig configures the JPEG DCT coefficient engine (C8).
type JpegEncodeConfig struct {
	// UseChroma includes chroma (non-luminance, id != 1) components in the
	// visiting order when true. When false only the luminance component is
	// visited, per §4.8.
	UseChroma bool

	Password string

	StrictCapacity  bool
	MaxPayloadBytes int64

	// Limits overrides the §6 pre-flight bounds pkg/capacity checks.
	// Zero-value defaults to DefaultLimits().
	Limits Limits
}

// PopulateUnsetConfigVars fills Limits with DefaultLimits() when unset.
func (c JpegEncodeConfig) PopulateUnsetConfigVars() JpegEncodeConfig {
	if c.Limits.MaxEmbedFileSize == 0 {
		c.Limits = DefaultLimits()
	}
	return c
}

package config

import "image/png"

const (
	// DefaultChunkSizeMultiplier is the value PopulateUnsetConfigVars gives an
	// unset ChunkSizeMultiplier. pkg/pixelstego fills pixels sequentially and
	// does not read the field.
	DefaultChunkSizeMultiplier = 32 * 1024

	MinBitDepth = 1
	MaxBitDepth = 4
)

// ImageEncodeConfig configures the pixel LSB engine (C6/C7).
type ImageEncodeConfig struct {
	BitDepth            byte
	ChunkSizeMultiplier int
	PngCompressionLevel png.CompressionLevel

	Password string

	// StrictCapacity, when true, turns a capacity overrun into a hard
	// CapacityExceeded error. When false, overruns are demoted to a collected
	// model.Warning and the embed proceeds anyway. The zero value is false and
	// PopulateUnsetConfigVars leaves it so; only the CLI's --strict-capacity
	// flag defaults to true.
	StrictCapacity  bool
	MaxPayloadBytes int64

	// Limits overrides the §6 pre-flight bounds pkg/capacity checks.
	// Zero-value defaults to DefaultLimits().
	Limits Limits
}

func (c ImageEncodeConfig) PopulateUnsetConfigVars() ImageEncodeConfig {
	if c.BitDepth < MinBitDepth || c.BitDepth > MaxBitDepth {
		c.BitDepth = 1
	}
	if c.ChunkSizeMultiplier < 1 {
		c.ChunkSizeMultiplier = DefaultChunkSizeMultiplier
	}
	if c.Limits.MaxImageDimension == 0 {
		c.Limits = DefaultLimits()
	}
	return c
}

// FrameMode selects how the multi-frame orchestrator (C7) spreads a payload
// across an animated/paged carrier.
type FrameMode byte

const (
	FrameModeFirst FrameMode = iota
	FrameModeAll
	FrameModeSplit
)

// MultiFrameConfig configures C7 on top of an ImageEncodeConfig.
type MultiFrameConfig struct {
	ImageEncodeConfig
	Mode FrameMode
	// FrameIndex is the frame to read from in first/all decode mode; ignored
	// for split mode, which is always auto-detected or explicit via Mode.
	FrameIndex int
}

// ParseFrameMode maps the wire/CLI mode names to a FrameMode, defaulting to
// FrameModeFirst for an empty or unrecognized string.
func ParseFrameMode(s string) FrameMode {
	switch s {
	case "all":
		return FrameModeAll
	case "split":
		return FrameModeSplit
	default:
		return FrameModeFirst
	}
}

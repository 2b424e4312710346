// Package capacity implements C10: the pre-flight checks every engine runs
// before embedding — length limits, image dimension bounds, an estimated
// post-compression/encryption size against calculated capacity, and
// filename sanitization — plus the one post-hoc exact check every engine's
// EmbedPayload already performs for real once the framed bytes exist.
package capacity

import (
	"strings"

	"nstego/pkg/config"
	"nstego/pkg/stegoerr"
)

// CheckSecretLength rejects a secret/message longer than limits.MaxSecretLength.
func CheckSecretLength(secretLen int, limits config.Limits) error {
	if secretLen > limits.MaxSecretLength {
		return stegoerr.InvalidArgument("secret length %d exceeds the maximum of %d", secretLen, limits.MaxSecretLength)
	}
	return nil
}

// CheckCoverLength rejects a text cover longer than limits.MaxCoverLength.
func CheckCoverLength(coverLen int, limits config.Limits) error {
	if coverLen > limits.MaxCoverLength {
		return stegoerr.InvalidArgument("cover length %d exceeds the maximum of %d", coverLen, limits.MaxCoverLength)
	}
	return nil
}

// CheckMessageLength rejects a message longer than limits.MaxMessageLength.
func CheckMessageLength(messageLen int, limits config.Limits) error {
	if messageLen > limits.MaxMessageLength {
		return stegoerr.InvalidArgument("message length %d exceeds the maximum of %d", messageLen, limits.MaxMessageLength)
	}
	return nil
}

// CheckEmbedFileSize rejects a file payload larger than limits.MaxEmbedFileSize.
func CheckEmbedFileSize(size int64, limits config.Limits) error {
	if size > limits.MaxEmbedFileSize {
		return stegoerr.InvalidArgument("embedded file size %d exceeds the maximum of %d", size, limits.MaxEmbedFileSize)
	}
	return nil
}

// CheckImageDimensions validates that width and height are positive, each at
// most limits.MaxImageDimension, and that their product does not exceed
// limits.MaxImageDimension squared.
func CheckImageDimensions(width, height int, limits config.Limits) error {
	if width <= 0 || height <= 0 {
		return stegoerr.InvalidArgument("image dimensions must be positive, got %dx%d", width, height)
	}
	if width > limits.MaxImageDimension || height > limits.MaxImageDimension {
		return stegoerr.InvalidArgument("image dimension exceeds the maximum of %d per side", limits.MaxImageDimension)
	}
	if int64(width)*int64(height) > int64(limits.MaxImageDimension)*int64(limits.MaxImageDimension) {
		return stegoerr.InvalidArgument("image pixel count exceeds the maximum of %d", int64(limits.MaxImageDimension)*int64(limits.MaxImageDimension))
	}
	return nil
}

// EstimatePostFramingSize implements §4.10's pre-compression heuristic: the
// ratio differs for text (0.6) and binary (0.7) payloads, plus a fixed
// 32-byte overhead when the result will be encrypted.
func EstimatePostFramingSize(payloadLen int, isText, encrypted bool) int64 {
	ratio := 0.7
	if isText {
		ratio = 0.6
	}
	estimate := int64(float64(payloadLen)*ratio + 0.999999) // ceil via epsilon
	if encrypted {
		estimate += 32
	}
	return estimate
}

// CheckEstimatedCapacity compares the §4.10 estimate to the carrier's actual
// capacity in bytes, returning a hard error when strict or nil (callers
// collect a warning themselves) otherwise.
func CheckEstimatedCapacity(estimated, available int64, strict bool) error {
	if estimated <= available {
		return nil
	}
	if strict {
		return stegoerr.CapacityExceeded(estimated, available, stegoerr.DefaultCapacityRemedy)
	}
	return nil
}

const sanitizeStrip = `/\?%*:|"<>`

// SanitizeFilename strips the characters §4.10 forbids plus any leading
// dots, truncates to limits.MaxFilenameLength while preserving the
// extension, and falls back to the literal "file" if the result is empty.
func SanitizeFilename(name string, limits config.Limits) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(sanitizeStrip, r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.TrimLeft(b.String(), ".")

	if len(cleaned) > limits.MaxFilenameLength {
		ext := ""
		if dot := strings.LastIndex(cleaned, "."); dot > 0 {
			ext = cleaned[dot:]
		}
		keep := limits.MaxFilenameLength - len(ext)
		if keep < 0 {
			keep = 0
		}
		if keep > len(cleaned) {
			keep = len(cleaned)
		}
		cleaned = cleaned[:keep] + ext
	}

	if cleaned == "" {
		return "file"
	}
	return cleaned
}

package api

// EncodeImageRequest carries a cover image plus a payload to embed with the
// pixel LSB engine. Image and file bytes travel as base64 inside JSON, the
// encoding/json default for []byte fields.
type EncodeImageRequest struct {
	Image          []byte `json:"image"`
	Text           string `json:"text,omitempty"`
	File           []byte `json:"file,omitempty"`
	FileName       string `json:"file_name,omitempty"`
	BitDepth       byte   `json:"bit_depth"`
	Password       string `json:"password,omitempty"`
	StrictCapacity bool   `json:"strict_capacity"`
	// FrameMode selects how an animated GIF or multi-page TIFF cover is used:
	// "first", "all", or "split". Ignored for single-frame covers.
	FrameMode  string `json:"frame_mode,omitempty"`
	FrameIndex int    `json:"frame_index,omitempty"`
}

type EncodeImageResponse struct {
	EncodedImage []byte   `json:"encoded_image"`
	Warnings     []string `json:"warnings,omitempty"`
	// FileName echoes req.FileName after §4.10's sanitization, when a file
	// payload (rather than text) was embedded.
	FileName string `json:"file_name,omitempty"`
}

type DecodeImageRequest struct {
	Image      []byte `json:"image"`
	BitDepth   byte   `json:"bit_depth"`
	Password   string `json:"password,omitempty"`
	FrameMode  string `json:"frame_mode,omitempty"`
	FrameIndex int    `json:"frame_index,omitempty"`
}

type DecodeImageResponse struct {
	Text   string `json:"text,omitempty"`
	File   []byte `json:"file,omitempty"`
	IsText bool   `json:"is_text"`
}

package api

type EncodeJpegRequest struct {
	Jpeg           []byte `json:"jpeg"`
	Text           string `json:"text,omitempty"`
	File           []byte `json:"file,omitempty"`
	FileName       string `json:"file_name,omitempty"`
	UseChroma      bool   `json:"use_chroma"`
	Password       string `json:"password,omitempty"`
	StrictCapacity bool   `json:"strict_capacity"`
}

type EncodeJpegResponse struct {
	EncodedJpeg []byte   `json:"encoded_jpeg"`
	Warnings    []string `json:"warnings,omitempty"`
	// FileName echoes req.FileName after §4.10's sanitization, when a file
	// payload (rather than text) was embedded.
	FileName string `json:"file_name,omitempty"`
}

type DecodeJpegRequest struct {
	Jpeg      []byte `json:"jpeg"`
	UseChroma bool   `json:"use_chroma"`
	Password  string `json:"password,omitempty"`
}

type DecodeJpegResponse struct {
	Text   string `json:"text,omitempty"`
	File   []byte `json:"file,omitempty"`
	IsText bool   `json:"is_text"`
}

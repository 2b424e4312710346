package imagecodec

import (
	"bytes"

	"nstego/pkg/jpegcoeff"
)

// ExtractCoefficients decodes the marker/Huffman structure of a JPEG file
// without running the IDCT, backing C8's external half.
func ExtractCoefficients(jpegBytes []byte) (*jpegcoeff.Coefficients, error) {
	return jpegcoeff.Decode(bytes.NewReader(jpegBytes))
}

// EncodeFromCoefficients re-serializes a Coefficients tree to JPEG bytes,
// replaying the original Huffman tables and quantization tables untouched so
// only the embedded coefficient LSBs differ from the source file.
func EncodeFromCoefficients(c *jpegcoeff.Coefficients) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpegcoeff.Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

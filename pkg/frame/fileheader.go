package frame

import (
	"encoding/binary"

	"nstego/pkg/stegoerr"
)

// FileMagic identifies a file-embedding header (§6): used by image binary
// helpers that self-describe a file, as opposed to the headerless binary
// helper which requires the caller to supply the length out of band.
const FileMagic = 0x55

// EncodeFileHeader builds magic(1) || name_len(1) || name || file_size(4 LE).
func EncodeFileHeader(name string, fileSize uint32) ([]byte, error) {
	if len(name) > 255 {
		return nil, stegoerr.InvalidArgument("file name %q is longer than 255 bytes", name)
	}
	out := make([]byte, 0, 6+len(name))
	out = append(out, FileMagic, byte(len(name)))
	out = append(out, name...)
	sizeBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBuf, fileSize)
	out = append(out, sizeBuf...)
	return out, nil
}

// FileHeader is the decoded form of EncodeFileHeader's output.
type FileHeader struct {
	Name     string
	FileSize uint32
	// Size is the total size in bytes of the header itself, so callers know
	// where the file content starts.
	Size int
}

func DecodeFileHeader(b []byte) (FileHeader, error) {
	if len(b) < 2 {
		return FileHeader{}, stegoerr.Truncated("file header requires at least 2 bytes, got %d", len(b))
	}
	if b[0] != FileMagic {
		return FileHeader{}, stegoerr.InvalidArgument("file header magic mismatch: expected 0x%02x, got 0x%02x", FileMagic, b[0])
	}
	nameLen := int(b[1])
	if len(b) < 2+nameLen+4 {
		return FileHeader{}, stegoerr.Truncated("file header declares name length %d but carrier delivered only %d bytes", nameLen, len(b)-2)
	}
	name := string(b[2 : 2+nameLen])
	size := binary.LittleEndian.Uint32(b[2+nameLen : 2+nameLen+4])
	return FileHeader{Name: name, FileSize: size, Size: 2 + nameLen + 4}, nil
}

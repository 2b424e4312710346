// Package frame implements C5: the shared payload framing layer every
// engine's bit source passes through — compress, encrypt, then a
// [type:u8][len:u32 LE] header in front of the result — plus the handful of
// smaller fixed-size headers (image-text length, multi-frame chunk, and
// file-embedding) the individual engines layer on top.
package frame

import (
	"encoding/binary"

	"nstego/pkg/compress"
	"nstego/pkg/model"
	"nstego/pkg/stegocrypto"
	"nstego/pkg/stegoerr"
)

// HeaderSize is the size in bytes of the [type, len] frame header (§3).
const HeaderSize = 5

// EncodePayload implements §4.5's encode_payload: compress, optionally
// encrypt, then prepend the type/length header.
func EncodePayload(p model.Payload, password string) ([]byte, error) {
	x, err := compress.Compress(p.Bytes)
	if err != nil {
		return nil, err
	}

	if password != "" {
		x, err = stegocrypto.Encrypt(x, password)
		if err != nil {
			return nil, err
		}
	}

	out := make([]byte, HeaderSize+len(x))
	out[0] = byte(p.Type)
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(x)))
	copy(out[5:], x)
	return out, nil
}

// DecodePayload implements §4.5's decode_payload. When expectedType is
// non-nil and disagrees with the framed type, it fails with
// PayloadTypeMismatch. Any other failure is Truncated,
// InvalidArgument (an encrypted body too short to hold salt and counter),
// DecryptionFailed, or DecompressionFailed.
func DecodePayload(framed []byte, password string, expectedType *model.PayloadType) (model.Payload, error) {
	if len(framed) < HeaderSize {
		return model.Payload{}, stegoerr.Truncated("framed payload shorter than the %d-byte header", HeaderSize)
	}

	typ := model.PayloadType(framed[0])
	length := binary.LittleEndian.Uint32(framed[1:5])

	if expectedType != nil && typ != *expectedType {
		return model.Payload{}, stegoerr.PayloadTypeMismatch("expected payload type %s but carrier holds %s", *expectedType, typ)
	}

	if uint32(len(framed)-HeaderSize) < length {
		return model.Payload{}, stegoerr.Truncated("declared length %d exceeds %d bytes delivered by carrier", length, len(framed)-HeaderSize)
	}

	x := framed[HeaderSize : HeaderSize+int(length)]

	var err error
	if password != "" {
		x, err = stegocrypto.Decrypt(x, password)
		if err != nil {
			if se, ok := err.(*stegoerr.Error); ok {
				return model.Payload{}, se
			}
			return model.Payload{}, stegoerr.DecryptionFailed(err)
		}
	}

	raw, err := compress.Decompress(x)
	if err != nil {
		return model.Payload{}, stegoerr.DecompressionFailed(err)
	}

	return model.Payload{Type: typ, Bytes: raw}, nil
}

// Decode auto-detects the payload type and returns it to the caller,
// equivalent to calling DecodePayload with expectedType == nil.
func Decode(framed []byte, password string) (model.Payload, error) {
	return DecodePayload(framed, password, nil)
}

package model

// PayloadType distinguishes a TEXT payload (UTF-8 bytes) from an opaque
// BINARY one, per §3.
type PayloadType byte

const (
	PayloadTypeText   PayloadType = 0x01
	PayloadTypeBinary PayloadType = 0x02
)

func (t PayloadType) String() string {
	switch t {
	case PayloadTypeText:
		return "text"
	case PayloadTypeBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Payload is the (type, bytes) pair every engine embeds or extracts.
type Payload struct {
	Type  PayloadType
	Bytes []byte
}

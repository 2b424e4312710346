// Package xorstream implements C2: a cyclic-key byte XOR that the pixel LSB
// and JPEG DCT engines apply to the C5-framed byte stream as a lightweight
// obfuscation pass, layered outside C4's password encryption rather than in
// place of it. The ZWC text engine does not use it.
package xorstream

// Apply XORs data against the UTF-8 bytes of password, cycling the password
// bytes across data. An empty password is the identity, and the operation
// is its own inverse: Apply(Apply(x, p), p) == x for every x and p.
func Apply(data []byte, password string) []byte {
	return ApplyAt(data, password, 0)
}

// ApplyAt is Apply but starts the keystream at the given absolute offset
// into the cyclic password, rather than at 0. Callers use this to decrypt a
// contiguous stream that was read back in more than one slice — the offset
// keeps each slice's portion of the keystream aligned with where it fell in
// the original, single continuous Apply call.
func ApplyAt(data []byte, password string, offset int) []byte {
	if password == "" {
		return data
	}
	p := []byte(password)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ p[(offset+i)%len(p)]
	}
	return out
}

// Package stegocrypto implements C4: PBKDF2-SHA256 key derivation and
// AES-256-CTR password encryption, following the salt||counter||ciphertext
// layout of §4.4. PBKDF2 comes from golang.org/x/crypto, the same family
// wqim-centi draws hkdf/argon2/chacha20poly1305 from for everything the
// standard library doesn't ship; AES-CTR itself is standard library
// crypto/aes+crypto/cipher, since nothing in the ecosystem improves on it.
package stegocrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"nstego/pkg/stegoerr"
)

const (
	saltSize       = 16
	counterSize    = 16
	pbkdf2Iters    = 100_000
	derivedKeyBits = 256
	minBlobLength  = saltSize + counterSize + 1
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iters, derivedKeyBits/8, sha256.New)
}

// Encrypt derives a key from password with a fresh random salt, encrypts
// plaintext with AES-256-CTR under a fresh random 128-bit counter block, and
// returns salt(16) || counter(16) || ciphertext.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	counter := make([]byte, counterSize)
	if _, err := io.ReadFull(rand.Reader, counter); err != nil {
		return nil, err
	}

	key := deriveKey(password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	stream := cipher.NewCTR(block, counter)
	stream.XORKeyStream(ciphertext, plaintext)

	out := make([]byte, 0, saltSize+counterSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, counter...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt reverses Encrypt. Blobs shorter than 33 bytes fail with
// InvalidArgument ("encrypted data too short"), per §4.4. A wrong password
// decrypts successfully at this layer (no authentication tag exists) and
// produces garbage the caller's downstream decompression/decoding will
// almost always reject.
func Decrypt(blob []byte, password string) ([]byte, error) {
	if len(blob) < minBlobLength {
		return nil, stegoerr.InvalidArgument("encrypted data too short: need at least %d bytes, got %d", minBlobLength, len(blob))
	}

	salt := blob[:saltSize]
	counter := blob[saltSize : saltSize+counterSize]
	ciphertext := blob[saltSize+counterSize:]

	key := deriveKey(password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	stream := cipher.NewCTR(block, counter)
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

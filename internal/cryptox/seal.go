package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/portalroom/internal/common"
)

// sealMagic prefixes blobs produced by Seal so Open can tell them apart from
// plain JSON backups.
var sealMagic = []byte("PRSEAL1")

var ErrNotSealed = errors.New("data is not sealed")

// Seal encrypts plaintext with AES-256-GCM under a key derived from
// passphrase. Layout: magic | salt(16) | nonce(12) | ciphertext.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := common.GenerateRandByteArray(saltSize)

	aesgcm, err := newGCM(DeriveKey([]byte(passphrase), salt))
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	out := make([]byte, 0, len(sealMagic)+len(salt)+len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// IsSealed reports whether data carries the Seal header.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealMagic)
}

// Open reverses Seal.
func Open(data []byte, passphrase string) ([]byte, error) {
	if !IsSealed(data) {
		return nil, ErrNotSealed
	}
	data = data[len(sealMagic):]
	if len(data) < saltSize {
		return nil, errMalformedHash
	}
	salt, rest := data[:saltSize], data[saltSize:]

	aesgcm, err := newGCM(DeriveKey([]byte(passphrase), salt))
	if err != nil {
		return nil, err
	}
	if len(rest) < aesgcm.NonceSize() {
		return nil, errMalformedHash
	}
	nonce, ciphertext := rest[:aesgcm.NonceSize()], rest[aesgcm.NonceSize():]

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

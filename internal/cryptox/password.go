// Package cryptox encodes and verifies account passwords and seals remote
// backups.
//
// Three password encodings exist in stored data:
//
//	argon2id$<salt>$<key>   current format, base64 (raw, std alphabet)
//	$2a$10$...              bcrypt, written by intermediate releases
//	wkzr0h / -wyv2ah        legacy 32-bit rolling hash in base36
//
// Only the first is ever written. The others are recognised by shape and
// upgraded on the next successful login.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Scheme identifies a stored password encoding.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeLegacy
	SchemeBcrypt
	SchemeArgon2id
)

func (s Scheme) String() string {
	switch s {
	case SchemeLegacy:
		return "legacy"
	case SchemeBcrypt:
		return "bcrypt"
	case SchemeArgon2id:
		return "argon2id"
	default:
		return "unknown"
	}
}

const (
	argonPrefix = "argon2id$"
	saltSize    = 16
)

var legacyShape = regexp.MustCompile(`^-?[0-9a-z]{1,7}$`)

var errMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword encodes password in the current format with a fresh salt.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encodeArgon(salt, DeriveKey([]byte(password), salt))
}

func encodeArgon(salt, key []byte) string {
	enc := base64.RawStdEncoding
	return argonPrefix + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key)
}

// Detect reports which scheme produced encoded.
func Detect(encoded string) Scheme {
	switch {
	case strings.HasPrefix(encoded, argonPrefix):
		return SchemeArgon2id
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return SchemeBcrypt
	case legacyShape.MatchString(encoded):
		return SchemeLegacy
	default:
		return SchemeUnknown
	}
}

// VerifyPassword checks password against encoded in whichever scheme
// encoded uses.
func VerifyPassword(encoded, password string) bool {
	switch Detect(encoded) {
	case SchemeArgon2id:
		salt, key, err := decodeArgon(encoded)
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(key, DeriveKey([]byte(password), salt)) == 1
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	case SchemeLegacy:
		return subtle.ConstantTimeCompare([]byte(encoded), []byte(LegacyHash(password))) == 1
	default:
		return false
	}
}

// NeedsRehash is true for anything not already in the current format.
func NeedsRehash(encoded string) bool {
	return Detect(encoded) != SchemeArgon2id
}

func decodeArgon(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(strings.TrimPrefix(encoded, argonPrefix), "$")
	if len(parts) != 2 {
		return nil, nil, errMalformedHash
	}
	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[0]); err != nil {
		return nil, nil, errMalformedHash
	}
	if key, err = enc.DecodeString(parts[1]); err != nil {
		return nil, nil, errMalformedHash
	}
	return salt, key, nil
}

// LegacyHash is the first-generation rolling hash: h = h*31 + c over UTF-16
// code units in 32-bit signed arithmetic, printed in base 36.
func LegacyHash(password string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(password)) {
		h = (h << 5) - h + int32(c)
	}
	return strconv.FormatInt(int64(h), 36)
}

// Package kdf registers the password hashing functions. Every output is a
// self-describing composite string so Verify can recompute it.
package kdf

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// KDF holds what the password hashers share: the salt source and the
// argon2 settings. Argon2 salts use the argon2 salt length, the other
// hashers use saltLen.
type KDF struct {
	random  security.Randomizer
	saltLen uint32
	argon2  *config.Argon2
}

func New(cfg *config.Argon2, saltLen uint32, random security.Randomizer) *KDF {
	if random == nil {
		random = security.StdlibRandomizer
	}

	return &KDF{
		random:  random,
		saltLen: saltLen,
		argon2:  cfg,
	}
}

func (k *KDF) Algorithms() []*transform.Algorithm {
	return []*transform.Algorithm{
		k.bcrypt(),
		k.scrypt(),
		k.pbkdf2(),
		k.argon2id(),
	}
}

// salt returns the user's salt as bytes, or length fresh random bytes when
// blank.
func (k *KDF) salt(given string, length uint32) ([]byte, error) {
	if given != "" {
		return []byte(given), nil
	}

	salt, err := k.random.GenerateRandomBytes(length)
	if err != nil {
		return nil, fmt.Errorf("generate salt with length %d: %w", length, err)
	}
	return salt, nil
}

// maxKeyLen bounds the derived key length a reference may ask for.
const maxKeyLen = 128

func encodeB64(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

// composite splits "$id$params$salt$key" and decodes salt and key.
type composite struct {
	params string
	salt   []byte
	key    []byte
}

func parseComposite(reference, id string, parts int) (*composite, error) {
	fields := strings.Split(strings.TrimSpace(reference), "$")
	if len(fields) != parts || fields[0] != "" || fields[1] != id {
		return nil, malformed(id, "unrecognized format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[parts-2])
	if err != nil {
		return nil, malformed(id, "salt is not base64")
	}

	key, err := base64.RawStdEncoding.DecodeString(fields[parts-1])
	if err != nil || len(key) == 0 || len(key) > maxKeyLen {
		return nil, malformed(id, "key is not base64")
	}

	return &composite{
		params: fields[parts-3],
		salt:   salt,
		key:    key,
	}, nil
}

func malformed(id, reason string) error {
	return &transform.Error{
		Kind:    transform.InvalidParameter,
		Message: fmt.Sprintf("reference is not a valid %s hash: %s", id, reason),
		Fields:  map[string]string{"digest": fmt.Sprintf("digest is not a valid %s hash", id)},
	}
}

// tooCostly rejects references whose work factor exceeds what a user could
// select, so a crafted reference cannot pin the CPU.
func tooCostly(id string, value, ceiling int) error {
	return &transform.Error{
		Kind:    transform.InvalidParameter,
		Message: fmt.Sprintf("%s reference cost %d exceeds %d", id, value, ceiling),
		Fields:  map[string]string{"digest": fmt.Sprintf("digest cost exceeds %d", ceiling)},
	}
}

func equalKeys(computed, expected []byte) bool {
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

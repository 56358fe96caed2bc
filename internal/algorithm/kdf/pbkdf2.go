package kdf

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2DefaultKeyLen = 32

type PBKDF2Params struct {
	Text       string `json:"text" label:"Password" input:"secret" validate:"notblank,max=1024"`
	Salt       string `json:"salt" label:"Salt (blank for random)" validate:"max=64"`
	Iterations int    `json:"iterations" label:"Iterations" validate:"cost=pbkdf2_iterations"`
	Hash       string `json:"hash" label:"Hash" validate:"omitempty,oneof=sha1 sha256 sha512"`
	KeyLength  int    `json:"key_length" label:"Key length (bytes)" validate:"omitempty,oneof=16 32 64"`
}

var pbkdf2Hashes = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

func (k *KDF) pbkdf2() *transform.Algorithm {
	iterations := transform.MustSelector(transform.PBKDF2Iterations)

	return transform.OneWay(transform.PBKDF2, "PBKDF2", transform.FamilyKDF,
		func(_ context.Context, p *PBKDF2Params) (string, error) {
			iter, err := iterations.Resolve(p.Iterations)
			if err != nil {
				return "", err
			}

			hashName := p.Hash
			if hashName == "" {
				hashName = "sha256"
			}

			keyLen := p.KeyLength
			if keyLen == 0 {
				keyLen = pbkdf2DefaultKeyLen
			}

			salt, err := k.salt(p.Salt, k.saltLen)
			if err != nil {
				return "", err
			}

			key := pbkdf2.Key([]byte(p.Text), salt, iter.Value(), keyLen, pbkdf2Hashes[hashName])
			return fmt.Sprintf("$pbkdf2$i=%d,h=%s$%s$%s",
				iter.Value(), hashName, encodeB64(salt), encodeB64(key)), nil
		},
		func(_ context.Context, p *PBKDF2Params, reference string) (bool, error) {
			c, err := parseComposite(reference, "pbkdf2", 5)
			if err != nil {
				return false, err
			}

			var iter int
			var hashName string
			if _, err := fmt.Sscanf(c.params, "i=%d,h=%s", &iter, &hashName); err != nil {
				return false, malformed("pbkdf2", "bad parameters")
			}

			newHash, ok := pbkdf2Hashes[hashName]
			if !ok || iter < 1 {
				return false, malformed("pbkdf2", "unknown hash or iteration count")
			}
			if iter > iterations.Max() {
				return false, tooCostly("pbkdf2", iter, iterations.Max())
			}

			key := pbkdf2.Key([]byte(p.Text), c.salt, iter, len(c.key), newHash)
			return equalKeys(key, c.key), nil
		})
}

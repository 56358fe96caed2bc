package kdf

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/argon2"
)

// argon2MaxMemory bounds verification of foreign references, in KiB.
const argon2MaxMemory = 256 * 1024

type Argon2Params struct {
	Text       string `json:"text" label:"Password" input:"secret" validate:"notblank,max=1024"`
	Salt       string `json:"salt" label:"Salt (blank for random)" validate:"max=64"`
	Iterations int    `json:"iterations" label:"Iterations" validate:"cost=argon2_iterations"`
}

func (k *KDF) argon2id() *transform.Algorithm {
	iterations := transform.MustSelector(transform.Argon2Iterations)

	return transform.OneWay(transform.Argon2id, "Argon2id", transform.FamilyKDF,
		func(_ context.Context, p *Argon2Params) (string, error) {
			iter, err := iterations.Resolve(p.Iterations)
			if err != nil {
				return "", err
			}

			salt, err := k.salt(p.Salt, k.argon2.SaltLength)
			if err != nil {
				return "", err
			}

			t := uint32(iter.Value())
			hash := argon2.IDKey([]byte(p.Text), salt, t, k.argon2.Memory, k.argon2.Threads, k.argon2.KeyLength)

			return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
				argon2.Version, k.argon2.Memory, t, k.argon2.Threads, encodeB64(salt), encodeB64(hash)), nil
		},
		func(_ context.Context, p *Argon2Params, reference string) (bool, error) {
			c, err := parseComposite(reference, "argon2id", 6)
			if err != nil {
				return false, err
			}

			var memory, time uint32
			var threads uint8
			if _, err := fmt.Sscanf(c.params, "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
				return false, malformed("argon2id", "bad parameters")
			}
			if time < 1 || threads < 1 || memory < 8*uint32(threads) {
				return false, malformed("argon2id", "parameters out of range")
			}
			if memory > argon2MaxMemory {
				return false, tooCostly("argon2id memory", int(memory), argon2MaxMemory)
			}
			if int(time) > iterations.Max() {
				return false, tooCostly("argon2id", int(time), iterations.Max())
			}

			hashLen := len(c.key)
			if err := security.CheckUint(hashLen); err != nil {
				return false, malformed("argon2id", "key too long")
			}
			computed := argon2.IDKey([]byte(p.Text), c.salt, time, memory, threads, uint32(hashLen))
			return equalKeys(computed, c.key), nil
		})
}

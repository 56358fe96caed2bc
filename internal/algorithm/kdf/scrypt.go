package kdf

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/scrypt"
)

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

type ScryptParams struct {
	Text string `json:"text" label:"Password" input:"secret" validate:"notblank,max=1024"`
	Salt string `json:"salt" label:"Salt (blank for random)" validate:"max=64"`
	N    int    `json:"n" label:"Cost (N)" validate:"cost=scrypt_n"`
}

func (k *KDF) scrypt() *transform.Algorithm {
	costN := transform.MustSelector(transform.ScryptN)

	return transform.OneWay(transform.Scrypt, "scrypt", transform.FamilyKDF,
		func(_ context.Context, p *ScryptParams) (string, error) {
			n, err := costN.Resolve(p.N)
			if err != nil {
				return "", err
			}

			salt, err := k.salt(p.Salt, k.saltLen)
			if err != nil {
				return "", err
			}

			key, err := scrypt.Key([]byte(p.Text), salt, n.Value(), scryptR, scryptP, scryptKeyLen)
			if err != nil {
				return "", fmt.Errorf("scrypt key: %w", err)
			}

			ln := bits.TrailingZeros(uint(n.Value()))
			return fmt.Sprintf("$scrypt$ln=%d,r=%d,p=%d$%s$%s",
				ln, scryptR, scryptP, encodeB64(salt), encodeB64(key)), nil
		},
		func(_ context.Context, p *ScryptParams, reference string) (bool, error) {
			c, err := parseComposite(reference, "scrypt", 5)
			if err != nil {
				return false, err
			}

			var ln, r, par int
			if _, err := fmt.Sscanf(c.params, "ln=%d,r=%d,p=%d", &ln, &r, &par); err != nil {
				return false, malformed("scrypt", "bad parameters")
			}
			if ln < 1 || ln > 30 || r < 1 || r > 32 || par < 1 || par > 4 {
				return false, malformed("scrypt", "parameters out of range")
			}
			if n := 1 << ln; n*r*par > costN.Max()*scryptR*scryptP {
				return false, tooCostly("scrypt", n, costN.Max())
			}

			key, err := scrypt.Key([]byte(p.Text), c.salt, 1<<ln, r, par, len(c.key))
			if err != nil {
				return false, fmt.Errorf("scrypt key: %w", err)
			}
			return equalKeys(key, c.key), nil
		})
}

package kdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/bcrypt"
)

type BcryptParams struct {
	Text   string `json:"text" label:"Password" input:"secret" validate:"notblank,maxbytes=72"`
	Rounds int    `json:"rounds" label:"Rounds" validate:"cost=bcrypt_rounds"`
}

func (k *KDF) bcrypt() *transform.Algorithm {
	rounds := transform.MustSelector(transform.BcryptRounds)

	return transform.OneWay(transform.Bcrypt, "bcrypt", transform.FamilyKDF,
		func(_ context.Context, p *BcryptParams) (string, error) {
			cost, err := rounds.Resolve(p.Rounds)
			if err != nil {
				return "", err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(p.Text), cost.Value())
			if err != nil {
				return "", fmt.Errorf("bcrypt generate: %w", err)
			}
			return string(hash), nil
		},
		func(_ context.Context, p *BcryptParams, reference string) (bool, error) {
			hash := []byte(strings.TrimSpace(reference))

			cost, err := bcrypt.Cost(hash)
			if err != nil {
				return false, malformed("bcrypt", err.Error())
			}
			if cost > rounds.Max() {
				return false, tooCostly("bcrypt", cost, rounds.Max())
			}

			err = bcrypt.CompareHashAndPassword(hash, []byte(p.Text))
			switch {
			case err == nil:
				return true, nil
			case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
				return false, nil
			default:
				return false, malformed("bcrypt", err.Error())
			}
		})
}

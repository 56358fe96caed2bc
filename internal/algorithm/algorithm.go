// Package algorithm assembles every algorithm family into one registry.
package algorithm

import (
	"fmt"

	"github.com/ferdiebergado/snaptools/internal/algorithm/asymmetric"
	"github.com/ferdiebergado/snaptools/internal/algorithm/blockcipher"
	"github.com/ferdiebergado/snaptools/internal/algorithm/codec"
	"github.com/ferdiebergado/snaptools/internal/algorithm/digest"
	"github.com/ferdiebergado/snaptools/internal/algorithm/kdf"
	"github.com/ferdiebergado/snaptools/internal/algorithm/token"
	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// NewRegistry registers all families in catalogue order. A nil random uses
// crypto/rand.
func NewRegistry(cfg *config.Config, random security.Randomizer) (*transform.Registry, error) {
	if random == nil {
		random = security.StdlibRandomizer
	}

	var algs []*transform.Algorithm
	algs = append(algs, digest.Algorithms()...)
	algs = append(algs, kdf.New(cfg.Argon2, cfg.Transform.SaltLength, random).Algorithms()...)
	algs = append(algs, blockcipher.New(random).Algorithms()...)
	algs = append(algs, asymmetric.New(cfg.Transform.DefaultPadding).Algorithms()...)
	algs = append(algs, codec.Algorithms()...)
	algs = append(algs, token.New().Algorithms()...)

	reg, err := transform.NewRegistry(algs...)
	if err != nil {
		return nil, fmt.Errorf("build algorithm registry: %w", err)
	}
	return reg, nil
}

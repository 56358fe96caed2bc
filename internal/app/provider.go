package app

import (
	"fmt"

	"github.com/ferdiebergado/snaptools/internal/algorithm"
	"github.com/ferdiebergado/snaptools/internal/catalog"
	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/platform/router"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// Provider holds the dependencies shared by both binaries. The validator is
// shared between request validation and the transform checker so both see
// the cost rule.
type Provider struct {
	Validator validation.Validator
	Router    router.Router
	Registry  *transform.Registry
	Invoker   *transform.Invoker
	Catalog   *catalog.Catalog
}

func NewProvider(cfg *config.Config, random security.Randomizer) (*Provider, error) {
	validator := validation.NewGoPlaygroundValidator()

	registry, err := algorithm.NewRegistry(cfg, random)
	if err != nil {
		return nil, err
	}

	checker, err := transform.NewChecker(registry, validator)
	if err != nil {
		return nil, fmt.Errorf("new checker: %w", err)
	}

	cat, err := catalog.New(registry)
	if err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}

	return &Provider{
		Validator: validator,
		Router:    router.NewGoexpressRouter(),
		Registry:  registry,
		Invoker:   transform.NewInvoker(registry, checker),
		Catalog:   cat,
	}, nil
}

// Package tool runs catalogue tools: the service behind every surface, the
// per-tool controller and the HTTP handler.
package tool

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/ferdiebergado/snaptools/internal/algorithm/asymmetric"
	"github.com/ferdiebergado/snaptools/internal/catalog"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// Input is one submission of a tool's form.
type Input struct {
	Fields  map[string]string `json:"fields" validate:"max=16"`
	Options map[string]any    `json:"options,omitempty" validate:"max=16"`
}

// LogValue lists field names only. The tool is logged by the caller.
func (i Input) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("fields", slices.Sorted(maps.Keys(i.Fields))),
		slog.Any("options", i.Options),
	)
}

// VerifyInput checks Input against Digest with a one-way tool.
type VerifyInput struct {
	Input   string            `json:"input"`
	Digest  string            `json:"digest"`
	Fields  map[string]string `json:"fields,omitempty" validate:"max=16"`
	Options map[string]any    `json:"options,omitempty" validate:"max=16"`
}

func (i VerifyInput) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("fields", slices.Sorted(maps.Keys(i.Fields))),
		slog.Any("options", i.Options),
	)
}

type Service interface {
	Tools(category string) []*catalog.Tool
	Tool(category, id string) (*catalog.Tool, error)
	Costs(category, id string) ([]transform.Cost, error)
	Transform(ctx context.Context, category, id string, dir transform.Direction, in Input) (string, error)
	Verify(ctx context.Context, category, id string, in VerifyInput) (transform.VerificationResult, error)
	GenerateRSAKey(ctx context.Context, bits int) (*asymmetric.KeyPair, error)
}

type service struct {
	catalog       *catalog.Catalog
	invoker       *transform.Invoker
	timeout       time.Duration
	keygenTimeout time.Duration
}

var _ Service = (*service)(nil)

// NewService bounds each transform by timeout and each key generation by
// keygenTimeout. Zero disables the bound.
func NewService(c *catalog.Catalog, inv *transform.Invoker, timeout, keygenTimeout time.Duration) Service {
	return &service{
		catalog:       c,
		invoker:       inv,
		timeout:       timeout,
		keygenTimeout: keygenTimeout,
	}
}

func (s *service) Tools(category string) []*catalog.Tool {
	return s.catalog.List(category)
}

func (s *service) Tool(category, id string) (*catalog.Tool, error) {
	return s.catalog.Lookup(category, id)
}

func (s *service) Costs(category, id string) ([]transform.Cost, error) {
	t, err := s.catalog.Lookup(category, id)
	if err != nil {
		return nil, err
	}
	return t.Costs, nil
}

func (s *service) Transform(ctx context.Context, category, id string, dir transform.Direction, in Input) (string, error) {
	t, err := s.catalog.Lookup(category, id)
	if err != nil {
		return "", err
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	return s.invoker.Transform(ctx, transform.Request{
		Algorithm: t.Algorithm,
		Fields:    in.Fields,
		Options:   in.Options,
	}, dir)
}

func (s *service) Verify(ctx context.Context, category, id string, in VerifyInput) (transform.VerificationResult, error) {
	t, err := s.catalog.Lookup(category, id)
	if err != nil {
		return transform.VerificationResult{}, err
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	return s.invoker.Verify(ctx, transform.VerificationRequest{
		Algorithm: t.Algorithm,
		Candidate: in.Input,
		Reference: in.Digest,
		Fields:    in.Fields,
		Options:   in.Options,
	})
}

func (s *service) GenerateRSAKey(ctx context.Context, bits int) (*asymmetric.KeyPair, error) {
	ctx, cancel := bound(ctx, s.keygenTimeout)
	defer cancel()

	return asymmetric.GenerateKeyPair(ctx, bits)
}

func bound(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

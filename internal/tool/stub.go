package tool

import (
	"context"
	"errors"
	"sync"

	"github.com/ferdiebergado/snaptools/internal/algorithm/asymmetric"
	"github.com/ferdiebergado/snaptools/internal/catalog"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

type StubService struct {
	ToolsFunc          func(category string) []*catalog.Tool
	ToolFunc           func(category, id string) (*catalog.Tool, error)
	CostsFunc          func(category, id string) ([]transform.Cost, error)
	TransformFunc      func(ctx context.Context, category, id string, dir transform.Direction, in Input) (string, error)
	VerifyFunc         func(ctx context.Context, category, id string, in VerifyInput) (transform.VerificationResult, error)
	GenerateRSAKeyFunc func(ctx context.Context, bits int) (*asymmetric.KeyPair, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Tools(category string) []*catalog.Tool {
	if s.ToolsFunc == nil {
		return nil
	}
	return s.ToolsFunc(category)
}

func (s *StubService) Tool(category, id string) (*catalog.Tool, error) {
	if s.ToolFunc == nil {
		return nil, errors.New("Tool() not implemented by stub")
	}
	return s.ToolFunc(category, id)
}

func (s *StubService) Costs(category, id string) ([]transform.Cost, error) {
	if s.CostsFunc == nil {
		return nil, errors.New("Costs() not implemented by stub")
	}
	return s.CostsFunc(category, id)
}

func (s *StubService) Transform(ctx context.Context, category, id string, dir transform.Direction, in Input) (string, error) {
	if s.TransformFunc == nil {
		return "", errors.New("Transform() not implemented by stub")
	}
	return s.TransformFunc(ctx, category, id, dir, in)
}

func (s *StubService) Verify(ctx context.Context, category, id string, in VerifyInput) (transform.VerificationResult, error) {
	if s.VerifyFunc == nil {
		return transform.VerificationResult{}, errors.New("Verify() not implemented by stub")
	}
	return s.VerifyFunc(ctx, category, id, in)
}

func (s *StubService) GenerateRSAKey(ctx context.Context, bits int) (*asymmetric.KeyPair, error) {
	if s.GenerateRSAKeyFunc == nil {
		return nil, errors.New("GenerateRSAKey() not implemented by stub")
	}
	return s.GenerateRSAKeyFunc(ctx, bits)
}

type Notification struct {
	Level   Level
	Title   string
	Message string
}

// StubNotifier records every notification.
type StubNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

var _ Notifier = (*StubNotifier)(nil)

func (n *StubNotifier) Notify(level Level, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Notification{level, title, message})
}

func (n *StubNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

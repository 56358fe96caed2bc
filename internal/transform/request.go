package transform

import (
	"log/slog"
	"maps"
	"slices"
)

// FieldText is the primary input field of every algorithm.
const FieldText = "text"

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Request is one explicit user action against an algorithm.
type Request struct {
	Algorithm ID
	Fields    map[string]string
	Options   map[string]any
}

// WithCost returns a copy of r with c applied to the option c belongs to.
// The zero Cost leaves the request unchanged.
func (r Request) WithCost(c Cost) Request {
	if c.selector == nil {
		return r
	}

	opts := make(map[string]any, len(r.Options)+1)
	maps.Copy(opts, r.Options)
	opts[c.selector.option] = c.value
	r.Options = opts
	return r
}

// LogValue lists field names only. Field values may hold keys and passphrases.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", string(r.Algorithm)),
		slog.Any("fields", slices.Sorted(maps.Keys(r.Fields))),
		slog.Any("options", r.Options),
	)
}

type VerificationRequest struct {
	Algorithm ID
	Candidate string
	Reference string
	Fields    map[string]string
	Options   map[string]any
}

func (r VerificationRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", string(r.Algorithm)),
		slog.Any("fields", slices.Sorted(maps.Keys(r.Fields))),
		slog.Any("options", r.Options),
	)
}

type VerificationResult struct {
	Matches bool `json:"matches"`
}

// Result is what a surface shows after a run: either a value or an error kind.
type Result struct {
	OK      bool              `json:"ok"`
	Value   string            `json:"value,omitempty"`
	Kind    ErrorKind         `json:"kind,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewResult(value string, err error) Result {
	if err == nil {
		return Result{OK: true, Value: value}
	}

	return Result{
		Kind:    KindOf(err),
		Message: err.Error(),
		Errors:  FieldsOf(err),
	}
}

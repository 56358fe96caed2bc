package transform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Invoker validates a request and calls exactly one algorithm function.
// Algorithms never run when validation fails.
type Invoker struct {
	registry *Registry
	checker  *Checker
}

func NewInvoker(registry *Registry, checker *Checker) *Invoker {
	return &Invoker{
		registry: registry,
		checker:  checker,
	}
}

func (i *Invoker) Registry() *Registry {
	return i.registry
}

func (i *Invoker) Validate(req Request, dir Direction) ValidationResult {
	return i.checker.Validate(req, dir)
}

func (i *Invoker) Forward(ctx context.Context, req Request) (string, error) {
	return i.Transform(ctx, req, Forward)
}

func (i *Invoker) Backward(ctx context.Context, req Request) (string, error) {
	return i.Transform(ctx, req, Backward)
}

func (i *Invoker) Transform(ctx context.Context, req Request, dir Direction) (string, error) {
	slog.Debug("transform requested", "direction", dir, "request", req)

	alg, err := i.registry.Lookup(req.Algorithm)
	if err != nil {
		return "", err
	}

	st, err := alg.stage(dir)
	if err != nil {
		return "", err
	}

	params, verr := i.checker.decodeStage(st, req.Fields, req.Options)
	if verr != nil {
		return "", verr
	}

	out, err := Await(ctx, func() (string, error) {
		return st.run(ctx, params)
	})
	if err != nil {
		return "", Failed(fmt.Sprintf("%s %s failed", alg.ID, dir), err)
	}
	return out, nil
}

// Verify recomputes a one-way algorithm over the candidate and compares the
// result with the reference.
func (i *Invoker) Verify(ctx context.Context, req VerificationRequest) (VerificationResult, error) {
	slog.Debug("verification requested", "request", req)

	missing := make(map[string]string, 2)
	if strings.TrimSpace(req.Candidate) == "" {
		missing["input"] = "input is required"
	}
	if strings.TrimSpace(req.Reference) == "" {
		missing["digest"] = "digest is required"
	}
	if len(missing) > 0 {
		return VerificationResult{}, &Error{
			Kind:    MissingInput,
			Message: MissingInput.Description(),
			Fields:  missing,
		}
	}

	alg, err := i.registry.Lookup(req.Algorithm)
	if err != nil {
		return VerificationResult{}, err
	}

	if alg.Kind != KindOneWay {
		return VerificationResult{}, &Error{
			Kind:    UnsupportedAlgorithm,
			Message: string(alg.ID) + " is reversible and cannot be verified",
		}
	}

	fields := make(map[string]string, len(req.Fields)+1)
	for k, v := range req.Fields {
		fields[k] = v
	}
	fields[FieldText] = req.Candidate

	params, verr := i.checker.decodeStage(&alg.forward, fields, req.Options)
	if verr != nil {
		return VerificationResult{}, verr
	}

	ok, err := Await(ctx, func() (bool, error) {
		return alg.match(ctx, params, req.Reference)
	})
	if err != nil {
		return VerificationResult{}, Failed(fmt.Sprintf("%s verify failed", alg.ID), err)
	}
	return VerificationResult{Matches: ok}, nil
}

// Await runs fn on its own goroutine and returns when it finishes or ctx is
// done, whichever comes first. A late result is dropped. A panic in fn is
// reported as TransformFailed.
func Await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, &Error{Kind: TransformFailed, Message: "operation cancelled", Err: err}
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("algorithm panicked", "panic", r)
				done <- outcome{err: &Error{Kind: TransformFailed, Message: "algorithm panicked", Err: fmt.Errorf("%v", r)}}
			}
		}()

		val, err := fn()
		done <- outcome{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, &Error{Kind: TransformFailed, Message: "operation cancelled", Err: ctx.Err()}
	case o := <-done:
		return o.val, o.err
	}
}

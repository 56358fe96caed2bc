package transform

import (
	"fmt"
	"slices"
)

// Registry is the closed set of algorithms a process can invoke.
type Registry struct {
	algorithms map[ID]*Algorithm
	order      []ID
}

func NewRegistry(algs ...*Algorithm) (*Registry, error) {
	r := &Registry{
		algorithms: make(map[ID]*Algorithm, len(algs)),
		order:      make([]ID, 0, len(algs)),
	}

	for _, a := range algs {
		if a == nil || a.ID == "" {
			return nil, fmt.Errorf("register algorithm: missing id")
		}
		if _, dup := r.algorithms[a.ID]; dup {
			return nil, fmt.Errorf("register algorithm: duplicate id %q", a.ID)
		}
		r.algorithms[a.ID] = a
		r.order = append(r.order, a.ID)
	}

	return r, nil
}

func (r *Registry) Lookup(id ID) (*Algorithm, error) {
	a, ok := r.algorithms[id]
	if !ok {
		return nil, &Error{
			Kind:    UnsupportedAlgorithm,
			Message: fmt.Sprintf("algorithm %q is not registered", id),
		}
	}
	return a, nil
}

// List returns the algorithms in registration order.
func (r *Registry) List() []*Algorithm {
	algs := make([]*Algorithm, 0, len(r.order))
	for _, id := range r.order {
		algs = append(algs, r.algorithms[id])
	}
	return algs
}

func (r *Registry) ByFamily(f Family) []*Algorithm {
	return slices.DeleteFunc(r.List(), func(a *Algorithm) bool {
		return a.Family != f
	})
}

// SelectableValues returns the costs a user may pick for id, or nil when the
// algorithm has no work factor.
func (r *Registry) SelectableValues(id ID) ([]Cost, error) {
	a, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}

	s, ok := a.CostSelector()
	if !ok {
		return nil, nil
	}
	return s.Values(), nil
}

package transform_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ferdiebergado/snaptools/internal/transform"
)

func TestSelector_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want []int
		def  int
	}{
		{transform.PBKDF2Iterations, []int{1000, 10000, 100000, 200000}, 10000},
		{transform.BcryptRounds, []int{4, 5, 6, 7, 8, 9, 10, 11, 12}, 10},
		{transform.ScryptN, []int{16384, 32768, 65536, 131072}, 32768},
		{transform.Argon2Iterations, []int{1, 2, 3, 4}, 3},
		{transform.RSAKeySize, []int{1024, 2048, 4096}, 2048},
		{transform.AESKeySize, []int{128, 192, 256}, 256},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, ok := transform.Selector(tc.name)
			if !ok {
				t.Fatalf("transform.Selector(%q) not found", tc.name)
			}

			var got []int
			for _, c := range s.Values() {
				got = append(got, c.Value())
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Values() = %v, want: %v", got, tc.want)
			}

			if d := s.Default().Value(); d != tc.def {
				t.Errorf("Default() = %d, want: %d", d, tc.def)
			}

			if !s.Allows(s.Default().Value()) {
				t.Errorf("Allows(Default()) = false, want: true")
			}
		})
	}
}

func TestCostSelector_Resolve(t *testing.T) {
	t.Parallel()

	s := transform.MustSelector(transform.PBKDF2Iterations)

	tests := []struct {
		name  string
		given int
		want  int
		err   error
	}{
		{"unset uses default", 0, 10000, nil},
		{"selectable", 200000, 200000, nil},
		{"above the enumeration", 10_000_000, 0, transform.ErrInvalidParameter},
		{"between values", 5000, 0, transform.ErrInvalidParameter},
		{"negative", -1, 0, transform.ErrInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Resolve(tc.given)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Resolve(%d) error = %v, want: %v", tc.given, err, tc.err)
			}
			if got.Value() != tc.want {
				t.Errorf("Resolve(%d) = %d, want: %d", tc.given, got.Value(), tc.want)
			}
		})
	}
}

func TestRequest_WithCost(t *testing.T) {
	t.Parallel()

	orig := transform.Request{
		Algorithm: transform.Bcrypt,
		Fields:    map[string]string{"text": "secret"},
		Options:   map[string]any{"rounds": 4},
	}

	cost := transform.MustSelector(transform.BcryptRounds).Values()[8]
	got := orig.WithCost(cost)

	if got.Options["rounds"] != 12 {
		t.Errorf("WithCost().Options[%q] = %v, want: %d", "rounds", got.Options["rounds"], 12)
	}
	if orig.Options["rounds"] != 4 {
		t.Errorf("original Options[%q] = %v, want: %d", "rounds", orig.Options["rounds"], 4)
	}

	unchanged := orig.WithCost(transform.Cost{})
	if unchanged.Options["rounds"] != 4 {
		t.Errorf("WithCost(zero).Options[%q] = %v, want: %d", "rounds", unchanged.Options["rounds"], 4)
	}
}

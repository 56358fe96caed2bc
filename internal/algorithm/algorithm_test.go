package algorithm_test

import (
	"testing"

	"github.com/ferdiebergado/snaptools/internal/algorithm"
	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg, err := algorithm.NewRegistry(config.Default(), nil)
	if err != nil {
		t.Fatalf("NewRegistry() = %v, want: nil", err)
	}

	wantFamilies := map[transform.Family]int{
		transform.FamilyDigest:     20,
		transform.FamilyMAC:        4,
		transform.FamilyKDF:        4,
		transform.FamilyCipher:     5,
		transform.FamilyAsymmetric: 1,
		transform.FamilyEncoding:   6,
		transform.FamilyToken:      1,
	}
	for fam, want := range wantFamilies {
		if got := len(reg.ByFamily(fam)); got != want {
			t.Errorf("len(ByFamily(%s)) = %d, want: %d", fam, got, want)
		}
	}

	for _, alg := range reg.List() {
		oneWay := alg.Family == transform.FamilyDigest || alg.Family == transform.FamilyMAC || alg.Family == transform.FamilyKDF
		if oneWay != (alg.Kind == transform.KindOneWay) {
			t.Errorf("%s: Kind = %v in family %s", alg.ID, alg.Kind, alg.Family)
		}
		if len(alg.Schema(transform.Forward)) == 0 {
			t.Errorf("%s has no forward fields", alg.ID)
		}
	}
}

func TestNewRegistry_Costs(t *testing.T) {
	t.Parallel()

	reg, err := algorithm.NewRegistry(config.Default(), nil)
	if err != nil {
		t.Fatalf("NewRegistry() = %v, want: nil", err)
	}

	tests := []struct {
		id   transform.ID
		want int
	}{
		{transform.Bcrypt, 9},
		{transform.PBKDF2, 4},
		{transform.Scrypt, 4},
		{transform.Argon2id, 4},
		{transform.AES, 3},
		{transform.SHA256, 0},
	}
	for _, tc := range tests {
		costs, err := reg.SelectableValues(tc.id)
		if err != nil {
			t.Fatalf("SelectableValues(%s) = %v, want: nil", tc.id, err)
		}
		if len(costs) != tc.want {
			t.Errorf("len(SelectableValues(%s)) = %d, want: %d", tc.id, len(costs), tc.want)
		}
	}
}

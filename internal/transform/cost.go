package transform

import (
	"fmt"
	"slices"
	"strconv"
)

// Selector names.
const (
	PBKDF2Iterations = "pbkdf2_iterations"
	BcryptRounds     = "bcrypt_rounds"
	ScryptN          = "scrypt_n"
	Argon2Iterations = "argon2_iterations"
	RSAKeySize       = "rsa_key_size"
	AESKeySize       = "aes_key_size"
)

// CostSelector is the closed set of values a user may choose for one work
// factor. Values outside the set cannot be constructed as a Cost.
type CostSelector struct {
	name   string
	option string
	label  string
	values []int
	def    int
}

// Cost is a work factor obtained from a CostSelector.
type Cost struct {
	selector *CostSelector
	value    int
}

var selectors = map[string]*CostSelector{
	PBKDF2Iterations: {
		name: PBKDF2Iterations, option: "iterations", label: "Iterations",
		values: []int{1000, 10000, 100000, 200000}, def: 10000,
	},
	BcryptRounds: {
		name: BcryptRounds, option: "rounds", label: "Rounds",
		values: []int{4, 5, 6, 7, 8, 9, 10, 11, 12}, def: 10,
	},
	ScryptN: {
		name: ScryptN, option: "n", label: "Cost (N)",
		values: []int{16384, 32768, 65536, 131072}, def: 32768,
	},
	Argon2Iterations: {
		name: Argon2Iterations, option: "iterations", label: "Iterations",
		values: []int{1, 2, 3, 4}, def: 3,
	},
	RSAKeySize: {
		name: RSAKeySize, option: "key_size", label: "Key size",
		values: []int{1024, 2048, 4096}, def: 2048,
	},
	AESKeySize: {
		name: AESKeySize, option: "key_size", label: "Key size",
		values: []int{128, 192, 256}, def: 256,
	},
}

func Selector(name string) (*CostSelector, bool) {
	s, ok := selectors[name]
	return s, ok
}

// MustSelector is for package-level wiring where the name is a constant.
func MustSelector(name string) *CostSelector {
	s, ok := selectors[name]
	if !ok {
		panic(fmt.Sprintf("transform: unknown cost selector %q", name))
	}
	return s
}

func (s *CostSelector) Name() string   { return s.name }
func (s *CostSelector) Option() string { return s.option }
func (s *CostSelector) Label() string  { return s.label }

// Values returns the selectable costs in ascending order.
func (s *CostSelector) Values() []Cost {
	costs := make([]Cost, 0, len(s.values))
	for _, v := range s.values {
		costs = append(costs, Cost{selector: s, value: v})
	}
	return costs
}

func (s *CostSelector) Default() Cost {
	return Cost{selector: s, value: s.def}
}

// Max is the most expensive selectable value. Verification refuses
// references that would cost more.
func (s *CostSelector) Max() int {
	return s.values[len(s.values)-1]
}

func (s *CostSelector) Allows(v int) bool {
	return slices.Contains(s.values, v)
}

// Resolve maps an unset option (zero) to the default and rejects anything
// outside the enumeration.
func (s *CostSelector) Resolve(v int) (Cost, error) {
	if v == 0 {
		return s.Default(), nil
	}

	if !s.Allows(v) {
		return Cost{}, &Error{
			Kind:    InvalidParameter,
			Message: fmt.Sprintf("%s %d is not selectable", s.option, v),
			Fields:  map[string]string{s.option: fmt.Sprintf("%s must be one of %v", s.option, s.values)},
		}
	}
	return Cost{selector: s, value: v}, nil
}

func (c Cost) Value() int { return c.value }

func (c Cost) String() string {
	return strconv.Itoa(c.value)
}

func (c Cost) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(c.value)), nil
}

// UnmarshalJSON reads the bare number MarshalJSON writes. The selector is not
// on the wire, so a decoded Cost must go through Resolve before it is used.
func (c *Cost) UnmarshalJSON(b []byte) error {
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	*c = Cost{value: v}
	return nil
}

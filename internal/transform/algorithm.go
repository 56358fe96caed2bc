package transform

import (
	"context"
	"fmt"
	"strings"
)

// ID identifies a registered algorithm.
type ID string

const (
	MD2        ID = "md2"
	MD4        ID = "md4"
	MD5        ID = "md5"
	SHA1       ID = "sha1"
	SHA224     ID = "sha224"
	SHA256     ID = "sha256"
	SHA384     ID = "sha384"
	SHA512     ID = "sha512"
	SHA512_224 ID = "sha512-224"
	SHA512_256 ID = "sha512-256"
	SHA3_224   ID = "sha3-224"
	SHA3_256   ID = "sha3-256"
	SHA3_384   ID = "sha3-384"
	SHA3_512   ID = "sha3-512"
	Keccak256  ID = "keccak-256"
	Keccak512  ID = "keccak-512"
	RIPEMD160  ID = "ripemd160"
	BLAKE2b256 ID = "blake2b-256"
	BLAKE2b512 ID = "blake2b-512"
	BLAKE2s256 ID = "blake2s-256"

	HMACMD5    ID = "hmac-md5"
	HMACSHA1   ID = "hmac-sha1"
	HMACSHA256 ID = "hmac-sha256"
	HMACSHA512 ID = "hmac-sha512"

	Bcrypt   ID = "bcrypt"
	Scrypt   ID = "scrypt"
	PBKDF2   ID = "pbkdf2"
	Argon2id ID = "argon2id"

	AES       ID = "aes"
	DES       ID = "des"
	TripleDES ID = "tripledes"
	Blowfish  ID = "blowfish"
	CAST5     ID = "cast5"

	RSA ID = "rsa"

	Base64    ID = "base64"
	Base64URL ID = "base64url"
	Base32    ID = "base32"
	Hex       ID = "hex"
	URL       ID = "url"
	HTML      ID = "html"

	JWT ID = "jwt"
)

type Kind int

const (
	KindOneWay Kind = iota + 1
	KindReversible
)

func (k Kind) String() string {
	if k == KindReversible {
		return "reversible"
	}
	return "one-way"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "one-way":
		*k = KindOneWay
	case "reversible":
		*k = KindReversible
	default:
		return fmt.Errorf("unknown algorithm kind %q", b)
	}
	return nil
}

type Family string

const (
	FamilyDigest     Family = "digest"
	FamilyMAC        Family = "mac"
	FamilyKDF        Family = "kdf"
	FamilyCipher     Family = "cipher"
	FamilyAsymmetric Family = "asymmetric"
	FamilyEncoding   Family = "encoding"
	FamilyToken      Family = "token"
)

// stage is one direction of an algorithm with its params type erased.
type stage struct {
	newParams func() any
	run       func(ctx context.Context, params any) (string, error)
	schema    []Field
}

// Algorithm describes one registered transform.
type Algorithm struct {
	ID     ID
	Name   string
	Family Family
	Kind   Kind

	forward  stage
	backward *stage
	match    func(ctx context.Context, params any, reference string) (bool, error)
}

func newStage[P any](fn func(context.Context, *P) (string, error)) stage {
	return stage{
		newParams: func() any { return new(P) },
		run: func(ctx context.Context, params any) (string, error) {
			return fn(ctx, params.(*P))
		},
		schema: schemaOf[P](),
	}
}

// OneWay describes a digest, MAC or KDF. match recomputes over the decoded
// params and compares with reference. A nil match compares the forward
// output case-insensitively.
func OneWay[P any](
	id ID, name string, family Family,
	forward func(context.Context, *P) (string, error),
	match func(context.Context, *P, string) (bool, error),
) *Algorithm {
	if match == nil {
		match = func(ctx context.Context, p *P, reference string) (bool, error) {
			got, err := forward(ctx, p)
			if err != nil {
				return false, err
			}
			return strings.EqualFold(got, strings.TrimSpace(reference)), nil
		}
	}

	return &Algorithm{
		ID:      id,
		Name:    name,
		Family:  family,
		Kind:    KindOneWay,
		forward: newStage(forward),
		match: func(ctx context.Context, params any, reference string) (bool, error) {
			return match(ctx, params.(*P), reference)
		},
	}
}

// Reversible describes a cipher, encoding or token whose backward stage
// inverts the forward stage.
func Reversible[F, B any](
	id ID, name string, family Family,
	forward func(context.Context, *F) (string, error),
	backward func(context.Context, *B) (string, error),
) *Algorithm {
	back := newStage(backward)
	return &Algorithm{
		ID:       id,
		Name:     name,
		Family:   family,
		Kind:     KindReversible,
		forward:  newStage(forward),
		backward: &back,
	}
}

// Schema returns the input fields of the given direction. One-way
// algorithms have no backward schema.
func (a *Algorithm) Schema(dir Direction) []Field {
	if dir == Backward {
		if a.backward == nil {
			return nil
		}
		return a.backward.schema
	}
	return a.forward.schema
}

// CostSelector returns the selector of the first cost option in the forward
// schema.
func (a *Algorithm) CostSelector() (*CostSelector, bool) {
	for _, f := range a.forward.schema {
		if f.Cost != "" {
			return Selector(f.Cost)
		}
	}
	return nil, false
}

func (a *Algorithm) stage(dir Direction) (*stage, error) {
	if dir == Forward {
		return &a.forward, nil
	}

	if a.backward == nil {
		return nil, &Error{
			Kind:    UnsupportedAlgorithm,
			Message: string(a.ID) + " is one-way and has no backward transform",
		}
	}
	return a.backward, nil
}

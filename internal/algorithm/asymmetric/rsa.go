// Package asymmetric registers RSA encryption over PEM keys and generates
// key pairs for it.
package asymmetric

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ferdiebergado/snaptools/internal/transform"
)

const (
	PaddingOAEP  = "oaep"
	PaddingPKCS1 = "pkcs1"
)

var (
	ErrNoPEM         = errors.New("no PEM block found")
	ErrNotRSAKey     = errors.New("key is not an RSA key")
	ErrUnknownPEM    = errors.New("unsupported PEM block type")
	ErrNotText       = errors.New("decrypted data is not valid UTF-8 text")
	ErrUnknownScheme = errors.New("unknown padding scheme")
)

type EncryptParams struct {
	Text      string `json:"text" label:"Plain text" input:"textarea" validate:"notblank,max=10000"`
	PublicKey string `json:"public_key" label:"Public key (PEM)" input:"textarea" validate:"notblank,max=10000"`
	Padding   string `json:"padding" label:"Padding" validate:"omitempty,oneof=oaep pkcs1"`
}

type DecryptParams struct {
	Text       string `json:"text" label:"Cipher text (base64)" input:"textarea" validate:"notblank,max=10000"`
	PrivateKey string `json:"private_key" label:"Private key (PEM)" input:"secret" validate:"notblank,max=20000"`
	Padding    string `json:"padding" label:"Padding" validate:"omitempty,oneof=oaep pkcs1"`
}

// RSA is the rsa algorithm plus key generation. padding applies when a
// request leaves it unset.
type RSA struct {
	padding string
}

func New(defaultPadding string) *RSA {
	if defaultPadding != PaddingPKCS1 {
		defaultPadding = PaddingOAEP
	}
	return &RSA{padding: defaultPadding}
}

func (r *RSA) Algorithms() []*transform.Algorithm {
	return []*transform.Algorithm{
		transform.Reversible(transform.RSA, "RSA", transform.FamilyAsymmetric, r.encrypt, r.decrypt),
	}
}

func (r *RSA) scheme(padding string) string {
	if padding == "" {
		return r.padding
	}
	return padding
}

func (r *RSA) encrypt(_ context.Context, p *EncryptParams) (string, error) {
	pub, err := ParsePublicKey(p.PublicKey)
	if err != nil {
		return "", err
	}

	var out []byte
	switch r.scheme(p.Padding) {
	case PaddingOAEP:
		out, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(p.Text), nil)
	case PaddingPKCS1:
		out, err = rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(p.Text))
	default:
		return "", ErrUnknownScheme
	}
	if err != nil {
		return "", fmt.Errorf("rsa encrypt: %w", err)
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

func (r *RSA) decrypt(_ context.Context, p *DecryptParams) (string, error) {
	priv, err := ParsePrivateKey(p.PrivateKey)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(p.Text))
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	var plain []byte
	switch r.scheme(p.Padding) {
	case PaddingOAEP:
		plain, err = rsa.DecryptOAEP(sha256.New(), nil, priv, ciphertext, nil)
	case PaddingPKCS1:
		plain, err = rsa.DecryptPKCS1v15(nil, priv, ciphertext)
	default:
		return "", ErrUnknownScheme
	}
	if err != nil {
		return "", fmt.Errorf("rsa decrypt: %w", err)
	}

	if !utf8.Valid(plain) {
		return "", ErrNotText
	}
	return string(plain), nil
}

// ParsePublicKey accepts PKIX "PUBLIC KEY" and PKCS#1 "RSA PUBLIC KEY" blocks.
func ParsePublicKey(data string) (*rsa.PublicKey, error) {
	block, err := decodePEM(data)
	if err != nil {
		return nil, err
	}

	switch block.Type {
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return pub, nil
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPEM, block.Type)
	}
}

// ParsePrivateKey accepts PKCS#8 "PRIVATE KEY" and PKCS#1 "RSA PRIVATE KEY" blocks.
func ParsePrivateKey(data string) (*rsa.PrivateKey, error) {
	block, err := decodePEM(data)
	if err != nil {
		return nil, err
	}

	switch block.Type {
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return priv, nil
	case "RSA PRIVATE KEY":
		priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return priv, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPEM, block.Type)
	}
}

func decodePEM(data string) (*pem.Block, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(data)))
	if block == nil {
		return nil, ErrNoPEM
	}
	return block, nil
}

// KeyPair holds PEM encoded keys: PKCS#8 private and PKIX public.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

func (k KeyPair) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("private_key", "[REDACTED]"),
		slog.Int("public_key_length", len(k.PublicKey)),
	)
}

// GenerateKeyPair creates a key of the given size. bits must be a value of
// the rsa_key_size selector; zero picks the default.
func GenerateKeyPair(ctx context.Context, bits int) (*KeyPair, error) {
	size, err := transform.MustSelector(transform.RSAKeySize).Resolve(bits)
	if err != nil {
		return nil, err
	}

	slog.Debug("generating rsa key pair", "bits", size.Value())

	pair, err := transform.Await(ctx, func() (*KeyPair, error) {
		priv, err := rsa.GenerateKey(rand.Reader, size.Value())
		if err != nil {
			return nil, fmt.Errorf("generate rsa key: %w", err)
		}
		return encodeKeyPair(priv)
	})
	if err != nil {
		return nil, transform.Failed("rsa key generation failed", err)
	}
	return pair, nil
}

func encodeKeyPair(priv *rsa.PrivateKey) (*KeyPair, error) {
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("marshal private key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
	}, nil
}

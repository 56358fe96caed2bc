// Package catalog maps (category, tool) pairs to registered algorithms and
// describes each tool's inputs.
package catalog

import (
	"fmt"

	"github.com/ferdiebergado/snaptools/internal/transform"
)

type Category string

const (
	Hashing    Category = "hashing"
	Encryption Category = "encryption"
	Conversion Category = "conversion"
)

// Tool is what a surface mounts for one (category, id) pair.
type Tool struct {
	Category       Category          `json:"category"`
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Algorithm      transform.ID      `json:"algorithm"`
	Kind           transform.Kind    `json:"kind"`
	Fields         []transform.Field `json:"fields"`
	BackwardFields []transform.Field `json:"backward_fields,omitempty"`
	Costs          []transform.Cost  `json:"costs,omitempty"`
}

// Verifiable reports whether the tool offers hash verification.
func (t *Tool) Verifiable() bool {
	return t.Kind == transform.KindOneWay
}

type entry struct {
	category    Category
	id          string
	title       string
	description string
	algorithm   transform.ID
}

var entries = []entry{
	{Hashing, "md2", "MD2 Hash Generator", "Generate and verify MD2 digests.", transform.MD2},
	{Hashing, "md4", "MD4 Hash Generator", "Generate and verify MD4 digests.", transform.MD4},
	{Hashing, "md5", "MD5 Hash Generator", "Generate and verify MD5 digests.", transform.MD5},
	{Hashing, "sha1", "SHA-1 Hash Generator", "Generate and verify SHA-1 digests.", transform.SHA1},
	{Hashing, "sha224", "SHA-224 Hash Generator", "Generate and verify SHA-224 digests.", transform.SHA224},
	{Hashing, "sha256", "SHA-256 Hash Generator", "Generate and verify SHA-256 digests.", transform.SHA256},
	{Hashing, "sha384", "SHA-384 Hash Generator", "Generate and verify SHA-384 digests.", transform.SHA384},
	{Hashing, "sha512", "SHA-512 Hash Generator", "Generate and verify SHA-512 digests.", transform.SHA512},
	{Hashing, "sha512-224", "SHA-512/224 Hash Generator", "Generate and verify SHA-512/224 digests.", transform.SHA512_224},
	{Hashing, "sha512-256", "SHA-512/256 Hash Generator", "Generate and verify SHA-512/256 digests.", transform.SHA512_256},
	{Hashing, "sha3-224", "SHA3-224 Hash Generator", "Generate and verify SHA3-224 digests.", transform.SHA3_224},
	{Hashing, "sha3-256", "SHA3-256 Hash Generator", "Generate and verify SHA3-256 digests.", transform.SHA3_256},
	{Hashing, "sha3-384", "SHA3-384 Hash Generator", "Generate and verify SHA3-384 digests.", transform.SHA3_384},
	{Hashing, "sha3-512", "SHA3-512 Hash Generator", "Generate and verify SHA3-512 digests.", transform.SHA3_512},
	{Hashing, "keccak-256", "Keccak-256 Hash Generator", "Generate and verify Keccak-256 digests as used by Ethereum.", transform.Keccak256},
	{Hashing, "keccak-512", "Keccak-512 Hash Generator", "Generate and verify Keccak-512 digests.", transform.Keccak512},
	{Hashing, "ripemd160", "RIPEMD-160 Hash Generator", "Generate and verify RIPEMD-160 digests.", transform.RIPEMD160},
	{Hashing, "blake2b-256", "BLAKE2b-256 Hash Generator", "Generate and verify BLAKE2b-256 digests.", transform.BLAKE2b256},
	{Hashing, "blake2b-512", "BLAKE2b-512 Hash Generator", "Generate and verify BLAKE2b-512 digests.", transform.BLAKE2b512},
	{Hashing, "blake2s-256", "BLAKE2s-256 Hash Generator", "Generate and verify BLAKE2s-256 digests.", transform.BLAKE2s256},
	{Hashing, "hmac-md5", "HMAC-MD5 Generator", "Compute and verify HMAC-MD5 message authentication codes.", transform.HMACMD5},
	{Hashing, "hmac-sha1", "HMAC-SHA1 Generator", "Compute and verify HMAC-SHA1 message authentication codes.", transform.HMACSHA1},
	{Hashing, "hmac-sha256", "HMAC-SHA256 Generator", "Compute and verify HMAC-SHA256 message authentication codes.", transform.HMACSHA256},
	{Hashing, "hmac-sha512", "HMAC-SHA512 Generator", "Compute and verify HMAC-SHA512 message authentication codes.", transform.HMACSHA512},
	{Hashing, "bcrypt", "Bcrypt Password Hasher", "Hash passwords with bcrypt and check them against a stored hash.", transform.Bcrypt},
	{Hashing, "scrypt", "Scrypt Password Hasher", "Derive scrypt hashes with a chosen cost and verify them.", transform.Scrypt},
	{Hashing, "pbkdf2", "PBKDF2 Password Hasher", "Derive PBKDF2 hashes with a chosen iteration count and verify them.", transform.PBKDF2},
	{Hashing, "argon2", "Argon2id Password Hasher", "Derive Argon2id hashes and verify them.", transform.Argon2id},

	{Encryption, "aes", "AES Encryption", "Encrypt and decrypt text with a passphrase using AES-CBC.", transform.AES},
	{Encryption, "des", "DES Encryption", "Encrypt and decrypt text with a passphrase using DES-CBC.", transform.DES},
	{Encryption, "triple-des", "Triple DES Encryption", "Encrypt and decrypt text with a passphrase using 3DES-CBC.", transform.TripleDES},
	{Encryption, "blowfish", "Blowfish Encryption", "Encrypt and decrypt text with a passphrase using Blowfish-CBC.", transform.Blowfish},
	{Encryption, "cast5", "CAST5 Encryption", "Encrypt and decrypt text with an 8 to 32 character key using CAST5-CBC.", transform.CAST5},
	{Encryption, "rsa", "RSA Encryption", "Encrypt with a public key and decrypt with a private key.", transform.RSA},

	{Conversion, "base64", "Base64 Encoder / Decoder", "Encode text to Base64 and back.", transform.Base64},
	{Conversion, "base64url", "Base64 URL Encoder / Decoder", "Encode text to URL-safe Base64 and back.", transform.Base64URL},
	{Conversion, "base32", "Base32 Encoder / Decoder", "Encode text to Base32 and back.", transform.Base32},
	{Conversion, "hex", "Hex Encoder / Decoder", "Convert text to hexadecimal and back.", transform.Hex},
	{Conversion, "url", "URL Encoder / Decoder", "Percent-encode text for use in a URL and back.", transform.URL},
	{Conversion, "html", "HTML Entity Encoder / Decoder", "Escape HTML special characters and back.", transform.HTML},
	{Conversion, "jwt", "JWT Encoder / Decoder", "Sign a JSON payload as an HS256 token, or verify one and show its claims.", transform.JWT},
}

type key struct {
	category Category
	id       string
}

// Catalog is the static mount table.
type Catalog struct {
	tools []*Tool
	index map[key]*Tool
}

// New resolves every entry against registry and fails on the first
// algorithm that is not registered.
func New(registry *transform.Registry) (*Catalog, error) {
	c := &Catalog{
		tools: make([]*Tool, 0, len(entries)),
		index: make(map[key]*Tool, len(entries)),
	}

	for _, e := range entries {
		alg, err := registry.Lookup(e.algorithm)
		if err != nil {
			return nil, fmt.Errorf("mount %s/%s: %w", e.category, e.id, err)
		}

		costs, err := registry.SelectableValues(e.algorithm)
		if err != nil {
			return nil, fmt.Errorf("costs for %s/%s: %w", e.category, e.id, err)
		}

		t := &Tool{
			Category:       e.category,
			ID:             e.id,
			Title:          e.title,
			Description:    e.description,
			Algorithm:      alg.ID,
			Kind:           alg.Kind,
			Fields:         alg.Schema(transform.Forward),
			BackwardFields: alg.Schema(transform.Backward),
			Costs:          costs,
		}
		c.tools = append(c.tools, t)
		c.index[key{e.category, e.id}] = t
	}

	return c, nil
}

func (c *Catalog) Lookup(category, id string) (*Tool, error) {
	t, ok := c.index[key{Category(category), id}]
	if !ok {
		return nil, &transform.Error{
			Kind:    transform.UnsupportedAlgorithm,
			Message: fmt.Sprintf("no tool %s/%s", category, id),
		}
	}
	return t, nil
}

// List returns every tool, optionally restricted to one category.
func (c *Catalog) List(category string) []*Tool {
	if category == "" {
		return c.tools
	}

	var tools []*Tool
	for _, t := range c.tools {
		if t.Category == Category(category) {
			tools = append(tools, t)
		}
	}
	return tools
}

func (c *Catalog) Categories() []Category {
	return []Category{Hashing, Encryption, Conversion}
}

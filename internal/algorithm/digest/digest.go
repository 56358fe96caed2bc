// Package digest registers the unkeyed hash functions and their HMAC
// variants.
package digest

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

type Params struct {
	Text     string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
	Encoding string `json:"encoding" label:"Output encoding" validate:"omitempty,oneof=hex base64"`
}

type HMACParams struct {
	Text     string `json:"text" label:"Message" input:"textarea" validate:"notblank,max=10000"`
	Key      string `json:"key" label:"Secret key" input:"secret" validate:"notblank,max=1024"`
	Encoding string `json:"encoding" label:"Output encoding" validate:"omitempty,oneof=hex base64"`
}

type function struct {
	id   transform.ID
	name string
	new  func() hash.Hash
}

var functions = []function{
	{transform.MD2, "MD2", newMD2},
	{transform.MD4, "MD4", md4.New},
	{transform.MD5, "MD5", md5.New},
	{transform.SHA1, "SHA-1", sha1.New},
	{transform.SHA224, "SHA-224", sha256.New224},
	{transform.SHA256, "SHA-256", sha256.New},
	{transform.SHA384, "SHA-384", sha512.New384},
	{transform.SHA512, "SHA-512", sha512.New},
	{transform.SHA512_224, "SHA-512/224", sha512.New512_224},
	{transform.SHA512_256, "SHA-512/256", sha512.New512_256},
	{transform.SHA3_224, "SHA3-224", sha3.New224},
	{transform.SHA3_256, "SHA3-256", sha3.New256},
	{transform.SHA3_384, "SHA3-384", sha3.New384},
	{transform.SHA3_512, "SHA3-512", sha3.New512},
	{transform.Keccak256, "Keccak-256", sha3.NewLegacyKeccak256},
	{transform.Keccak512, "Keccak-512", sha3.NewLegacyKeccak512},
	{transform.RIPEMD160, "RIPEMD-160", ripemd160.New},
	{transform.BLAKE2b256, "BLAKE2b-256", mustUnkeyed(blake2b.New256)},
	{transform.BLAKE2b512, "BLAKE2b-512", mustUnkeyed(blake2b.New512)},
	{transform.BLAKE2s256, "BLAKE2s-256", mustUnkeyed(blake2s.New256)},
}

var macs = []function{
	{transform.HMACMD5, "HMAC-MD5", md5.New},
	{transform.HMACSHA1, "HMAC-SHA1", sha1.New},
	{transform.HMACSHA256, "HMAC-SHA256", sha256.New},
	{transform.HMACSHA512, "HMAC-SHA512", sha512.New},
}

// mustUnkeyed adapts the BLAKE2 constructors, which only fail for keys
// longer than the block size.
func mustUnkeyed(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(fmt.Sprintf("unkeyed blake2: %v", err))
		}
		return h
	}
}

func Algorithms() []*transform.Algorithm {
	algs := make([]*transform.Algorithm, 0, len(functions)+len(macs))
	for _, f := range functions {
		algs = append(algs, newDigest(f))
	}
	for _, f := range macs {
		algs = append(algs, newHMAC(f))
	}
	return algs
}

func newDigest(f function) *transform.Algorithm {
	sum := func(_ context.Context, p *Params) (string, error) {
		h := f.new()
		h.Write([]byte(p.Text))
		return encode(h.Sum(nil), p.Encoding), nil
	}

	return transform.OneWay(f.id, f.name, transform.FamilyDigest, sum,
		func(ctx context.Context, p *Params, reference string) (bool, error) {
			got, err := sum(ctx, p)
			if err != nil {
				return false, err
			}
			return Match(got, reference, p.Encoding), nil
		})
}

func newHMAC(f function) *transform.Algorithm {
	sum := func(_ context.Context, p *HMACParams) (string, error) {
		mac := hmac.New(f.new, []byte(p.Key))
		mac.Write([]byte(p.Text))
		return encode(mac.Sum(nil), p.Encoding), nil
	}

	return transform.OneWay(f.id, f.name, transform.FamilyMAC, sum,
		func(ctx context.Context, p *HMACParams, reference string) (bool, error) {
			got, err := sum(ctx, p)
			if err != nil {
				return false, err
			}
			return Match(got, reference, p.Encoding), nil
		})
}

func encode(sum []byte, encoding string) string {
	if encoding == EncodingBase64 {
		return base64.StdEncoding.EncodeToString(sum)
	}
	return hex.EncodeToString(sum)
}

// Match compares a computed digest with a user-supplied reference.
// Hex ignores case. Base64 is case-sensitive and must match exactly.
func Match(computed, reference, encoding string) bool {
	reference = strings.TrimSpace(reference)
	if encoding == EncodingBase64 {
		return computed == reference
	}
	return strings.EqualFold(computed, reference)
}

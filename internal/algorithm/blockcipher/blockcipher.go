// Package blockcipher registers the passphrase-based symmetric ciphers.
package blockcipher

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/transform"
	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
)

// Sealed text is capped at the envelope of 10000 characters of 4-byte runes:
// 40000 bytes, one block of padding and the 16-byte header, base64 encoded.

// Params serves DES and Triple DES, whose passphrase has no length rule
// beyond a sane cap.
type Params struct {
	Text string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,max=128"`
}

type SealedParams struct {
	Text string `json:"text" label:"Cipher text (base64)" input:"textarea" validate:"notblank,max=53376"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,max=128"`
}

type AESParams struct {
	Text    string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
	Key     string `json:"key" label:"Secret key" input:"secret" validate:"notblank,max=128"`
	KeySize int    `json:"key_size" label:"Key size" validate:"cost=aes_key_size"`
}

type AESSealedParams struct {
	Text    string `json:"text" label:"Cipher text (base64)" input:"textarea" validate:"notblank,max=53376"`
	Key     string `json:"key" label:"Secret key" input:"secret" validate:"notblank,max=128"`
	KeySize int    `json:"key_size" label:"Key size" validate:"cost=aes_key_size"`
}

type BlowfishParams struct {
	Text string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,min=4,max=56"`
}

type BlowfishSealedParams struct {
	Text string `json:"text" label:"Cipher text (base64)" input:"textarea" validate:"notblank,max=53376"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,min=4,max=56"`
}

type CAST5Params struct {
	Text string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,min=8,max=32"`
}

type CAST5SealedParams struct {
	Text string `json:"text" label:"Cipher text (base64)" input:"textarea" validate:"notblank,max=53376"`
	Key  string `json:"key" label:"Secret key" input:"secret" validate:"notblank,min=8,max=32"`
}

var (
	desSuite       = suite{keyLen: 8, ivLen: des.BlockSize, newBlock: des.NewCipher}
	tripleDESSuite = suite{keyLen: 24, ivLen: des.BlockSize, newBlock: des.NewTripleDESCipher}
	blowfishSuite  = suite{keyLen: 16, ivLen: blowfish.BlockSize, newBlock: func(key []byte) (cipher.Block, error) {
		return blowfish.NewCipher(key)
	}}
	cast5Suite = suite{keyLen: 16, ivLen: cast5.BlockSize, newBlock: func(key []byte) (cipher.Block, error) {
		return cast5.NewCipher(key)
	}}
)

func aesSuite(bits int) suite {
	return suite{keyLen: bits / 8, ivLen: aes.BlockSize, newBlock: aes.NewCipher}
}

// Ciphers builds the block cipher algorithms. random supplies the 8-byte
// envelope salts.
type Ciphers struct {
	random security.Randomizer
}

func New(random security.Randomizer) *Ciphers {
	if random == nil {
		random = security.StdlibRandomizer
	}
	return &Ciphers{random: random}
}

func (c *Ciphers) Algorithms() []*transform.Algorithm {
	keySize := transform.MustSelector(transform.AESKeySize)

	aesSuiteFor := func(size int) (suite, error) {
		bits, err := keySize.Resolve(size)
		if err != nil {
			return suite{}, err
		}
		return aesSuite(bits.Value()), nil
	}

	return []*transform.Algorithm{
		transform.Reversible(transform.AES, "AES", transform.FamilyCipher,
			func(_ context.Context, p *AESParams) (string, error) {
				s, err := aesSuiteFor(p.KeySize)
				if err != nil {
					return "", err
				}
				return seal(s, c.random, p.Text, p.Key)
			},
			func(_ context.Context, p *AESSealedParams) (string, error) {
				s, err := aesSuiteFor(p.KeySize)
				if err != nil {
					return "", err
				}
				return open(s, p.Text, p.Key)
			}),
		transform.Reversible(transform.DES, "DES", transform.FamilyCipher,
			func(_ context.Context, p *Params) (string, error) { return seal(desSuite, c.random, p.Text, p.Key) },
			func(_ context.Context, p *SealedParams) (string, error) { return open(desSuite, p.Text, p.Key) }),
		transform.Reversible(transform.TripleDES, "Triple DES", transform.FamilyCipher,
			func(_ context.Context, p *Params) (string, error) { return seal(tripleDESSuite, c.random, p.Text, p.Key) },
			func(_ context.Context, p *SealedParams) (string, error) { return open(tripleDESSuite, p.Text, p.Key) }),
		transform.Reversible(transform.Blowfish, "Blowfish", transform.FamilyCipher,
			func(_ context.Context, p *BlowfishParams) (string, error) {
				return seal(blowfishSuite, c.random, p.Text, p.Key)
			},
			func(_ context.Context, p *BlowfishSealedParams) (string, error) { return open(blowfishSuite, p.Text, p.Key) }),
		transform.Reversible(transform.CAST5, "CAST5", transform.FamilyCipher,
			func(_ context.Context, p *CAST5Params) (string, error) { return seal(cast5Suite, c.random, p.Text, p.Key) },
			func(_ context.Context, p *CAST5SealedParams) (string, error) { return open(cast5Suite, p.Text, p.Key) }),
	}
}

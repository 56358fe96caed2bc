package blockcipher_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ferdiebergado/snaptools/internal/algorithm/blockcipher"
	"github.com/ferdiebergado/snaptools/internal/pkg/security"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

var fixedSalt = []byte{1, 2, 3, 4, 5, 6, 7, 8}

func newInvoker(t *testing.T, random security.Randomizer) *transform.Invoker {
	t.Helper()

	reg, err := transform.NewRegistry(blockcipher.New(random).Algorithms()...)
	if err != nil {
		t.Fatalf("transform.NewRegistry() = %v, want: nil", err)
	}
	checker, err := transform.NewChecker(reg, validation.NewGoPlaygroundValidator())
	if err != nil {
		t.Fatalf("transform.NewChecker() = %v, want: nil", err)
	}
	return transform.NewInvoker(reg, checker)
}

func fixedRandom() security.Randomizer {
	return security.NewReaderRandomizer(bytes.NewReader(fixedSalt))
}

// Expected values come from `openssl enc -<cipher>-cbc -md md5 -S 0102030405060708 -k <key> -a`
// with the Salted__ header and salt prepended.
func TestCipher_OpenSSLCompatible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      transform.ID
		key     string
		options map[string]any
		want    string
	}{
		{"aes-256", transform.AES, "secret", nil, "U2FsdGVkX18BAgMEBQYHCOnm0/Q3E5WOvGZk9dn2Meo="},
		{"aes-128", transform.AES, "secret", map[string]any{"key_size": 128}, "U2FsdGVkX18BAgMEBQYHCMrUCly9Uka+DXqgZXHJXsQ="},
		{"des", transform.DES, "secret", nil, "U2FsdGVkX18BAgMEBQYHCGffjms5kP0KIN07q3CdByI="},
		{"des-ede3", transform.TripleDES, "secret", nil, "U2FsdGVkX18BAgMEBQYHCAiubwC8q2mQbp8T9/TdnG0="},
		{"bf", transform.Blowfish, "secret", nil, "U2FsdGVkX18BAgMEBQYHCN8+C0cyqgDFwjGptIRLT0U="},
		{"cast5", transform.CAST5, "secretkey", nil, "U2FsdGVkX18BAgMEBQYHCMni05gKAl7/aoQPEIYPzn4="},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inv := newInvoker(t, fixedRandom())
			got, err := inv.Forward(context.Background(), transform.Request{
				Algorithm: tc.id,
				Fields:    map[string]string{"text": "Hello World", "key": tc.key},
				Options:   tc.options,
			})
			if err != nil {
				t.Fatalf("Forward() = %v, want: nil", err)
			}
			if got != tc.want {
				t.Errorf("Forward() = %s, want: %s", got, tc.want)
			}

			plain, err := inv.Backward(context.Background(), transform.Request{
				Algorithm: tc.id,
				Fields:    map[string]string{"text": tc.want, "key": tc.key},
				Options:   tc.options,
			})
			if err != nil {
				t.Fatalf("Backward() = %v, want: nil", err)
			}
			if plain != "Hello World" {
				t.Errorf("Backward() = %q, want: %q", plain, "Hello World")
			}
		})
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a",
		"exactly sixteen!",
		"ünïcødé ✓ text spanning more than a couple of blocks of the cipher",
		strings.Repeat("x", 10000),
		strings.Repeat("é", 10000),
		strings.Repeat("😀", 10000),
	}

	for _, id := range []transform.ID{transform.AES, transform.DES, transform.TripleDES, transform.Blowfish, transform.CAST5} {
		for _, in := range inputs {
			inv := newInvoker(t, security.StdlibRandomizer)
			fields := map[string]string{"text": in, "key": "passphrase"}

			enc, err := inv.Forward(context.Background(), transform.Request{Algorithm: id, Fields: fields})
			if err != nil {
				t.Fatalf("%s Forward() = %v, want: nil", id, err)
			}

			dec, err := inv.Backward(context.Background(), transform.Request{
				Algorithm: id,
				Fields:    map[string]string{"text": enc, "key": "passphrase"},
			})
			if err != nil {
				t.Fatalf("%s Backward() = %v, want: nil", id, err)
			}
			if dec != in {
				t.Errorf("%s Backward(Forward(%.20q)) = %.20q", id, in, dec)
			}
		}
	}
}

func TestCipher_RandomSalt(t *testing.T) {
	t.Parallel()

	inv := newInvoker(t, security.StdlibRandomizer)
	req := transform.Request{Algorithm: transform.AES, Fields: map[string]string{"text": "same", "key": "same key"}}

	a, _ := inv.Forward(context.Background(), req)
	b, _ := inv.Forward(context.Background(), req)
	if a == b {
		t.Errorf("two encryptions are identical: %s", a)
	}
}

func TestCipher_CAST5KeyBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyLen int
		kind   transform.ErrorKind
	}{
		{7, transform.InvalidLength},
		{8, transform.KindNone},
		{32, transform.KindNone},
		{33, transform.InvalidLength},
	}
	for _, tc := range tests {
		inv := newInvoker(t, security.StdlibRandomizer)
		_, err := inv.Forward(context.Background(), transform.Request{
			Algorithm: transform.CAST5,
			Fields:    map[string]string{"text": "Hello World", "key": strings.Repeat("k", tc.keyLen)},
		})
		if got := transform.KindOf(err); got != tc.kind {
			t.Errorf("CAST5 key of %d chars: KindOf(err) = %v, want: %v", tc.keyLen, got, tc.kind)
		}
	}
}

func TestCipher_WrongKey(t *testing.T) {
	t.Parallel()

	inv := newInvoker(t, fixedRandom())
	_, err := inv.Backward(context.Background(), transform.Request{
		Algorithm: transform.AES,
		Fields:    map[string]string{"text": "U2FsdGVkX18BAgMEBQYHCOnm0/Q3E5WOvGZk9dn2Meo=", "key": "not the secret"},
	})

	if got, want := transform.KindOf(err), transform.TransformFailed; got != want {
		t.Errorf("KindOf(Backward(wrong key)) = %v, want: %v", got, want)
	}
	if !errors.Is(err, blockcipher.ErrBadPadding) && !errors.Is(err, blockcipher.ErrNotText) {
		t.Errorf("Backward(wrong key) = %v, want padding or text error", err)
	}
}

func TestCipher_MalformedCiphertext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       error
	}{
		{"not base64", "%%%", nil},
		{"no header", "SGVsbG8gV29ybGQgSGVsbG8gV29ybGQ=", blockcipher.ErrNotSalted},
		{"header only", "U2FsdGVkX18BAgMEBQYHCA==", blockcipher.ErrShortMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inv := newInvoker(t, security.StdlibRandomizer)
			_, err := inv.Backward(context.Background(), transform.Request{
				Algorithm: transform.DES,
				Fields:    map[string]string{"text": tc.text, "key": "secret"},
			})
			if got, want := transform.KindOf(err), transform.TransformFailed; got != want {
				t.Errorf("KindOf(Backward()) = %v, want: %v", got, want)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Backward() = %v, want: %v", err, tc.want)
			}
		})
	}
}

func TestCipher_TextCaps(t *testing.T) {
	t.Parallel()

	inv := newInvoker(t, security.StdlibRandomizer)

	_, err := inv.Forward(context.Background(), transform.Request{
		Algorithm: transform.AES,
		Fields:    map[string]string{"text": strings.Repeat("x", 10001), "key": "passphrase"},
	})
	if got, want := transform.KindOf(err), transform.InvalidLength; got != want {
		t.Errorf("KindOf(Forward(10001 chars)) = %v, want: %v", got, want)
	}

	_, err = inv.Backward(context.Background(), transform.Request{
		Algorithm: transform.AES,
		Fields:    map[string]string{"text": strings.Repeat("A", 53377), "key": "passphrase"},
	})
	if got, want := transform.KindOf(err), transform.InvalidLength; got != want {
		t.Errorf("KindOf(Backward(53377 chars)) = %v, want: %v", got, want)
	}
}

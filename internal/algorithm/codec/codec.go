// Package codec registers the text encodings: base64, base64url, base32,
// hex, URL component and HTML entity escaping.
package codec

import (
	"context"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ferdiebergado/snaptools/internal/transform"
)

var ErrNotText = errors.New("decoded data is not valid UTF-8 text")

type Params struct {
	Text string `json:"text" label:"Text" input:"textarea" validate:"notblank,max=10000"`
}

// The backward caps are the longest encoding of a 10000 character input of
// 4-byte runes, so anything the forward stage produces decodes again.
type (
	Base64Params struct {
		Text string `json:"text" label:"Encoded text" input:"textarea" validate:"notblank,max=53336"`
	}
	Base32Params struct {
		Text string `json:"text" label:"Encoded text" input:"textarea" validate:"notblank,max=64000"`
	}
	HexParams struct {
		Text string `json:"text" label:"Encoded text" input:"textarea" validate:"notblank,max=80000"`
	}
	URLParams struct {
		Text string `json:"text" label:"Encoded text" input:"textarea" validate:"notblank,max=120000"`
	}
	HTMLParams struct {
		Text string `json:"text" label:"Encoded text" input:"textarea" validate:"notblank,max=50000"`
	}
)

func (p *Base64Params) encoded() string { return p.Text }
func (p *Base32Params) encoded() string { return p.Text }
func (p *HexParams) encoded() string    { return p.Text }
func (p *URLParams) encoded() string    { return p.Text }
func (p *HTMLParams) encoded() string   { return p.Text }

// encodedParams is the pointer form of a backward params struct.
type encodedParams[B any] interface {
	*B
	encoded() string
}

type codec struct {
	id     transform.ID
	name   string
	encode func(string) string
	decode func(string) (string, error)
}

func Algorithms() []*transform.Algorithm {
	return []*transform.Algorithm{
		newCodec[Base64Params](bytesCodec(transform.Base64, "Base64", base64.StdEncoding.EncodeToString, base64.StdEncoding.DecodeString)),
		newCodec[Base64Params](bytesCodec(transform.Base64URL, "Base64 URL", base64.RawURLEncoding.EncodeToString, decodeBase64URL)),
		newCodec[Base32Params](bytesCodec(transform.Base32, "Base32", base32.StdEncoding.EncodeToString, base32.StdEncoding.DecodeString)),
		newCodec[HexParams](bytesCodec(transform.Hex, "Hex", hex.EncodeToString, hex.DecodeString)),
		newCodec[URLParams](codec{transform.URL, "URL", EncodeURIComponent, url.PathUnescape}),
		newCodec[HTMLParams](codec{transform.HTML, "HTML entities", html.EscapeString, func(s string) (string, error) { return html.UnescapeString(s), nil }}),
	}
}

func newCodec[B any, PB encodedParams[B]](c codec) *transform.Algorithm {
	return transform.Reversible(c.id, c.name, transform.FamilyEncoding,
		func(_ context.Context, p *Params) (string, error) {
			return c.encode(p.Text), nil
		},
		func(_ context.Context, p *B) (string, error) {
			out, err := c.decode(PB(p).encoded())
			if err != nil {
				return "", fmt.Errorf("%s decode: %w", c.id, err)
			}
			if !utf8.ValidString(out) {
				return "", ErrNotText
			}
			return out, nil
		})
}

// bytesCodec lifts a []byte encoding to the string codec shape. Surrounding
// whitespace is never part of these encodings and is dropped before decoding.
func bytesCodec(id transform.ID, name string, enc func([]byte) string, dec func(string) ([]byte, error)) codec {
	return codec{
		id:     id,
		name:   name,
		encode: func(s string) string { return enc([]byte(s)) },
		decode: func(s string) (string, error) {
			b, err := dec(strings.TrimSpace(s))
			return string(b), err
		},
	}
}

// decodeBase64URL accepts both padded and unpadded input.
func decodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// EncodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ),
// matching the browser function of the same name.
func EncodeURIComponent(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return uriUnreserved.Replace(escaped)
}

var uriUnreserved = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

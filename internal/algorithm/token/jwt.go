// Package token registers JSON Web Token signing and verification with a
// shared HMAC secret.
package token

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdiebergado/snaptools/internal/transform"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotObject = errors.New("payload is not a JSON object")

type SignParams struct {
	Text      string `json:"text" label:"Payload (JSON)" input:"textarea" validate:"notblank,max=10000,json"`
	Secret    string `json:"secret" label:"Secret" input:"secret" validate:"notblank,max=512"`
	ExpiresIn int    `json:"expires_in" label:"Expires in (seconds)" validate:"gte=0,lte=31536000"`
}

type VerifyParams struct {
	Text   string `json:"text" label:"Token" input:"textarea" validate:"notblank,max=20000,jwt"`
	Secret string `json:"secret" label:"Secret" input:"secret" validate:"notblank,max=512"`
}

// Signer issues and checks HS256 tokens.
type Signer struct {
	method jwt.SigningMethod
	now    func() time.Time
}

func New() *Signer {
	return &Signer{
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
}

func (s *Signer) Algorithms() []*transform.Algorithm {
	return []*transform.Algorithm{
		transform.Reversible(transform.JWT, "JWT (HS256)", transform.FamilyToken,
			func(_ context.Context, p *SignParams) (string, error) {
				return s.Sign(p.Text, p.Secret, time.Duration(p.ExpiresIn)*time.Second)
			},
			func(_ context.Context, p *VerifyParams) (string, error) {
				return s.Verify(p.Text, p.Secret)
			}),
	}
}

// Sign signs the JSON object payload. A positive ttl sets exp, and iat when
// the payload has none.
func (s *Signer) Sign(payload, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotObject, err)
	}
	if claims == nil {
		return "", ErrNotObject
	}

	if ttl > 0 {
		now := s.now()
		claims["exp"] = now.Add(ttl).Unix()
		if _, ok := claims["iat"]; !ok {
			claims["iat"] = now.Unix()
		}
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and the time claims, then returns the claims
// as compact JSON.
func (s *Signer) Verify(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(strings.TrimSpace(tokenString), func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithJSONNumber(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unknown claims type: %T", token.Claims)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(claims); err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

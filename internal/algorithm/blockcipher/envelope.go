package blockcipher

import (
	"bytes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ferdiebergado/snaptools/internal/pkg/security"
)

// The envelope is the OpenSSL "enc" layout: "Salted__", an 8-byte salt,
// then CBC ciphertext with PKCS#7 padding, all base64 encoded. Key and IV
// come from EVP_BytesToKey with MD5, which keeps output interchangeable
// with `openssl enc -md md5` and CryptoJS passphrase mode.

const (
	saltMagic = "Salted__"
	saltLen   = 8
)

var (
	ErrNotSalted    = errors.New("ciphertext has no Salted__ header")
	ErrBadPadding   = errors.New("bad padding, the key is probably wrong")
	ErrNotText      = errors.New("decrypted data is not valid UTF-8 text, the key is probably wrong")
	ErrShortMessage = errors.New("ciphertext is not a whole number of blocks")
)

type suite struct {
	keyLen   int
	ivLen    int
	newBlock func(key []byte) (cipher.Block, error)
}

func seal(s suite, random security.Randomizer, plaintext, passphrase string) (string, error) {
	salt, err := random.GenerateRandomBytes(saltLen)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, iv := deriveKey([]byte(passphrase), salt, s.keyLen, s.ivLen)
	block, err := s.newBlock(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	padded := pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(saltMagic)+saltLen+len(padded))
	copy(out, saltMagic)
	copy(out[len(saltMagic):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltMagic)+saltLen:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

func open(s suite, encoded, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	if len(raw) < len(saltMagic)+saltLen || !bytes.Equal(raw[:len(saltMagic)], []byte(saltMagic)) {
		return "", ErrNotSalted
	}

	salt := raw[len(saltMagic) : len(saltMagic)+saltLen]
	ciphertext := raw[len(saltMagic)+saltLen:]

	key, iv := deriveKey([]byte(passphrase), salt, s.keyLen, s.ivLen)
	block, err := s.newBlock(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	bs := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return "", ErrShortMessage
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	plain, err = unpad(plain, bs)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plain) {
		return "", ErrNotText
	}
	return string(plain), nil
}

// deriveKey is OpenSSL's EVP_BytesToKey with MD5 and one iteration.
func deriveKey(passphrase, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrBadPadding
	}

	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, ErrBadPadding
	}

	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrBadPadding
		}
	}
	return b[:len(b)-n], nil
}

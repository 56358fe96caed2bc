package security

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Randomizer produces salts and key material.
type Randomizer func(length uint32) ([]byte, error)

func (r Randomizer) GenerateRandomBytes(length uint32) ([]byte, error) {
	return r(length)
}

var StdlibRandomizer = Randomizer(GenerateRandomBytes)

// NewReaderRandomizer draws bytes from src. Tests use it for reproducible salts.
func NewReaderRandomizer(src io.Reader) Randomizer {
	return func(length uint32) ([]byte, error) {
		key := make([]byte, length)
		if _, err := io.ReadFull(src, key); err != nil {
			return nil, fmt.Errorf("read random bytes: %w", err)
		}
		return key, nil
	}
}

func GenerateRandomBytes(length uint32) ([]byte, error) {
	key := make([]byte, length)

	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}

	return key, nil
}

// CheckUint reports whether i fits in a uint32.
func CheckUint(i int) error {
	if i < 0 || i > int(^uint32(0)) {
		return fmt.Errorf("integer %d exceeds uint32", i)
	}
	return nil
}

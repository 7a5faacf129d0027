package otp

import (
	"crypto/rand"
	"errors"
)

// MinLength and MaxLength bound the supported code lengths.
const (
	MinLength = 4
	MaxLength = 8
)

// ErrInvalidLength is returned when the requested length is outside bounds.
var ErrInvalidLength = errors.New("otp: code length out of range")

// Generator defines the contract for producing verification codes.
type Generator interface {
	// Generate returns a code of exactly length decimal digits.
	Generate(length int) (string, error)
}

// Numeric implements Generator using crypto/rand.
//
// Each digit is an independent uniform draw; rejection sampling avoids the
// modulo bias a naive `b % 10` would introduce. Generated codes are not
// checked for uniqueness against outstanding codes.
type Numeric struct{}

// NewNumeric returns a Numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a string of length decimal digits.
func (*Numeric) Generate(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", ErrInvalidLength
	}

	code := make([]byte, length)
	buf := make([]byte, 1)

	for i := 0; i < length; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		// 250 is the largest multiple of 10 that fits in a byte; values at or
		// above it would skew the distribution, so redraw.
		if buf[0] >= 250 {
			continue
		}

		code[i] = '0' + buf[0]%10
		i++
	}

	return string(code), nil
}

package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
)

// Alphabet for human-facing tokens; drops 0/O/1/I to keep them readable in logs.
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const runTokenLength = 8

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RunToken returns a short random identifier used to correlate the log lines
// of a single scheduler run. Falls back to a hex token if the system entropy
// source misbehaves, so a run is never left without an identifier.
func RunToken() string {
	token, err := RandomString(runTokenLength, tokenAlphabet)
	if err != nil {
		fallback := make([]byte, runTokenLength/2)
		_, _ = rand.Read(fallback)
		return hex.EncodeToString(fallback)
	}
	return token
}

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// TicketCodeAlphabet is ASCII letters followed by digits.
const TicketCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const TicketCodeLength = 8

// GenerateTicketCode draws TicketCodeLength characters uniformly from
// TicketCodeAlphabet.
func GenerateTicketCode() (string, error) {
	max := big.NewInt(int64(len(TicketCodeAlphabet)))
	code := make([]byte, TicketCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = TicketCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// GenerateID returns a random UUID v4 string.
func GenerateID() string {
	return uuid.NewString()
}

// Package qr encodes ticket codes as QR images. With a secret configured the
// payload is AES-encrypted so a scanned code cannot be forged by hand.
package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"

	"ms-venue/internal/models"
)

// DefaultSize is the PNG edge in pixels.
const DefaultSize = 256

var ErrInvalidPayload = fmt.Errorf("%w: invalid QR payload", models.ErrInvalidInput)

// Payload is what a ticket QR carries.
type Payload struct {
	TicketCode string `json:"ticket_code"`
	MatchID    string `json:"match_id,omitempty"`
	SeatLabel  string `json:"seat_label,omitempty"`
}

type Generator struct {
	secret []byte
}

// NewGenerator hashes secret to an AES-256 key. An empty secret produces
// plain JSON payloads.
func NewGenerator(secret string) *Generator {
	if secret == "" {
		return &Generator{}
	}
	hashed := sha256.Sum256([]byte(secret))
	return &Generator{secret: hashed[:]}
}

// Payload returns the string embedded in the QR image of c.
func (g *Generator) Payload(c models.Customer) (string, error) {
	data, err := json.Marshal(Payload{TicketCode: c.TicketCode, MatchID: c.MatchID, SeatLabel: c.SeatLabel})
	if err != nil {
		return "", err
	}
	if g.secret == nil {
		return string(data), nil
	}
	return encryptAES(data, g.secret)
}

// PNG renders the QR image of c.
func (g *Generator) PNG(c models.Customer, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	payload, err := g.Payload(c)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// Decode reverses Payload.
func (g *Generator) Decode(payload string) (Payload, error) {
	data := []byte(payload)
	if g.secret != nil {
		var err error
		if data, err = decryptAES(payload, g.secret); err != nil {
			return Payload{}, err
		}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil || p.TicketCode == "" {
		return Payload{}, ErrInvalidPayload
	}
	return p, nil
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

func decryptAES(encoded string, key []byte) ([]byte, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if len(ciphertext) < aes.BlockSize {
		return nil, ErrInvalidPayload
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv, data := ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	out := make([]byte, len(data))
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(out, data)
	return out, nil
}

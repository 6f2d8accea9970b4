// Package gameid generates round identifiers in TypeID form: a "round_"
// prefix followed by a UUIDv7 encoded as 26 characters of Crockford base32.
// IDs sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Prefix is prepended to every round ID.
const Prefix = "round_"

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator mints round IDs from a clock and a source of randomness.
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil randSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate returns a new round ID.
func (g *Generator) Generate() string {
	uuid := g.uuidV7()
	return Prefix + encodeBase32(uuid)
}

// uuidV7 lays out 48 bits of Unix milliseconds, the version and variant
// bits, and 74 random bits.
func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return uuid
}

// encodeBase32 encodes 128 bits as 26 base32 characters. The value is
// treated as 130 bits with two leading zero bits, so the first character is
// always 0-7.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	// Walk the 130-bit string five bits at a time from the most significant end.
	for i := range out {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2 // offset past the two padding bits
			v <<= 1
			if bit >= 0 {
				v |= (data[bit/8] >> (7 - bit%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks that id is a well-formed round ID.
func Validate(id string) error {
	body, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return fmt.Errorf("round ID must start with %q", Prefix)
	}
	if len(body) != 26 {
		return fmt.Errorf("round ID must have 26 characters after the prefix, got %d", len(body))
	}
	if body[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", body[0])
	}
	for i, char := range body {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}

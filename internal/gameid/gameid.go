// Package gameid allocates identifiers for simulated games and for the
// drives and plays inside them.
//
// Game ids are UUIDv7 values encoded as 26 lowercase Crockford base32
// characters, so they sort by creation time. Drive and play ids are small
// monotonic integers handed out by a Sequence that the caller owns; the
// simulation never reaches into shared counters.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32, lowercase.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded game id.
const Length = 26

// RandSource supplies random bytes for id generation.
type RandSource interface {
	IntN(n int) int
}

// Generator mints game ids.
type Generator struct {
	rand RandSource
	now  func() time.Time
}

// NewGenerator returns a generator. A nil source uses crypto/rand.
func NewGenerator(src RandSource) *Generator {
	return &Generator{rand: src, now: time.Now}
}

// Generate returns a new game id using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new game id.
func (g *Generator) Generate() string {
	var id [16]byte

	ms := g.now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes 128 bits as 26 five-bit groups, most significant first.
// The final group carries the last three bits padded with two zero bits.
func encode(data [16]byte) string {
	var b strings.Builder
	b.Grow(Length)

	for i := 0; i < Length; i++ {
		bit := i * 5
		idx, off := bit/8, bit%8

		var v byte
		if off <= 3 {
			v = (data[idx] >> (3 - off)) & 0x1f
		} else {
			v = (data[idx] << (off - 3)) & 0x1f
			if idx+1 < len(data) {
				v |= data[idx+1] >> (11 - off)
			}
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Validate reports whether id is a well-formed game id.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game id must be %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}

// Sequence hands out drive and play ids for one game. The zero value starts
// both counters at 1. Fields are exported so a suspended game can persist
// and restore its counters.
type Sequence struct {
	Drives int `json:"drives"`
	Plays  int `json:"plays"`
}

// NextDrive returns the next drive id.
func (s *Sequence) NextDrive() int {
	s.Drives++
	return s.Drives
}

// NextPlay returns the next play id.
func (s *Sequence) NextPlay() int {
	s.Plays++
	return s.Plays
}

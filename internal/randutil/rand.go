// Package randutil builds the deterministic random streams the simulation
// consumes. Every game owns exactly one stream so that replaying a seed
// reproduces the game play for play.
package randutil

import (
	"fmt"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// It draws the same sequence as NewStream(seed).Rand().
func New(seed int64) *rand.Rand {
	return NewStream(seed).Rand()
}

// Stream is a seeded PCG generator whose position can be saved and restored.
// math/rand/v2's Rand keeps no state beyond its source, so marshalling the
// PCG captures everything needed to resume the sequence.
type Stream struct {
	pcg *rand.PCG
	rng *rand.Rand
}

// NewStream creates a stream seeded from seed.
func NewStream(seed int64) *Stream {
	u := uint64(seed)
	pcg := rand.NewPCG(mix(u), mix(u+goldenRatio64))
	return &Stream{pcg: pcg, rng: rand.New(pcg)}
}

// RestoreStream rebuilds a stream from the bytes produced by MarshalBinary.
func RestoreStream(state []byte) (*Stream, error) {
	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restore rng state: %w", err)
	}
	return &Stream{pcg: pcg, rng: rand.New(pcg)}, nil
}

// Rand returns the generator view of the stream.
func (s *Stream) Rand() *rand.Rand {
	return s.rng
}

// MarshalBinary encodes the current generator position.
func (s *Stream) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

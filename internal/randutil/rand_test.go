package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "draw %d diverged", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	t.Parallel()

	a, b := New(1), New(2)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 32)
}

func TestStreamRestoreContinuesSequence(t *testing.T) {
	t.Parallel()

	s := NewStream(7)
	for i := 0; i < 57; i++ {
		s.Rand().Float64()
	}

	state, err := s.MarshalBinary()
	require.NoError(t, err)

	restored, err := RestoreStream(state)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.Equal(t, s.Rand().NormFloat64(), restored.Rand().NormFloat64())
	}
}

func TestRestoreStreamRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := RestoreStream([]byte("nope"))
	assert.Error(t, err)
}

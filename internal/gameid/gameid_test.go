package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays values for deterministic ids.
type fixedSource struct {
	values []int
	next   int
}

func (f *fixedSource) IntN(n int) int {
	if f.next >= len(f.values) {
		return 0
	}
	v := f.values[f.next] % n
	f.next++
	return v
}

func TestGenerateIsValid(t *testing.T) {
	t.Parallel()

	id := Generate()
	require.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateSortsByTime(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	g := NewGenerator(&fixedSource{values: []int{255, 255, 255, 255, 255, 255, 255, 255, 255, 255}})
	g.now = func() time.Time { return now }
	first := g.Generate()

	g = NewGenerator(&fixedSource{})
	g.now = func() time.Time { return now.Add(time.Millisecond) }
	second := g.Generate()

	assert.Less(t, strings.Compare(first, second), 0)
}

func TestGeneratorWithSourceIsDeterministic(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	mk := func() string {
		g := NewGenerator(&fixedSource{values: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
		g.now = func() time.Time { return now }
		return g.Generate()
	}
	assert.Equal(t, mk(), mk())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	var s Sequence
	assert.Equal(t, 1, s.NextDrive())
	assert.Equal(t, 1, s.NextPlay())
	assert.Equal(t, 2, s.NextPlay())
	assert.Equal(t, 2, s.NextDrive())

	resumed := Sequence{Drives: s.Drives, Plays: s.Plays}
	assert.Equal(t, s.NextPlay(), resumed.NextPlay())
}

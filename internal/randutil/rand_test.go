package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 20 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestDerive(t *testing.T) {
	seen := make(map[int64]bool)
	for i := range 100 {
		s := Derive(42, i)
		assert.False(t, seen[s], "stream %d repeats a seed", i)
		seen[s] = true
	}
	assert.Equal(t, Derive(42, 3), Derive(42, 3))
}

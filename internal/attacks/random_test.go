package attacks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lth/hashflood/internal/hashmodel"
)

func TestRandomGenerateLength(t *testing.T) {
	c := NewRandomCollider(RandomConfig{Seed: 1})

	strings, err := c.GenerateLength(1000, 15)
	require.NoError(t, err)
	require.Len(t, strings, 1000)

	hashes := make(map[uint32]struct{})
	var m hashmodel.DJBX31A
	for _, s := range strings {
		assert.Len(t, s, 20)
		hashes[m.Sum32(s)] = struct{}{}
	}
	assert.GreaterOrEqual(t, len(hashes), 995)
}

func TestRandomDefaultLength(t *testing.T) {
	c := NewRandomCollider(RandomConfig{})
	assert.Equal(t, DefaultRandomLength, c.Length())

	strings, err := c.Generate(10)
	require.NoError(t, err)
	for _, s := range strings {
		assert.Len(t, s, EncodedLength(DefaultRandomLength))
	}
}

func TestRandomSeeded(t *testing.T) {
	a, err := NewRandomCollider(RandomConfig{Seed: 42}).Generate(50)
	require.NoError(t, err)
	b, err := NewRandomCollider(RandomConfig{Seed: 42}).Generate(50)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewRandomCollider(RandomConfig{Seed: 43}).Generate(50)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRandomInvalidArguments(t *testing.T) {
	c := NewRandomCollider(RandomConfig{Seed: 1})

	_, err := c.GenerateLength(-1, 15)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = c.GenerateLength(10, 0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestEncodedLength(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{1, 2},
		{3, 4},
		{15, 20},
		{16, 22},
	}

	for _, tt := range tests {
		if got := EncodedLength(tt.length); got != tt.expected {
			t.Errorf("EncodedLength(%d) = %d, want %d", tt.length, got, tt.expected)
		}
	}
}

func TestRandomConcurrentUse(t *testing.T) {
	c := NewRandomCollider(RandomConfig{Seed: 1})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			strings, err := c.Generate(100)
			assert.NoError(t, err)
			assert.Len(t, strings, 100)
		}()
	}
	wg.Wait()
}

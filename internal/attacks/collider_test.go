package attacks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lth/hashflood/internal/hashmodel"
)

var counts = []int{0, 1, 2, 3, 4, 5, 10, 100, 1000, 15000, 25000, 30000}

func assertCollisionSet(t *testing.T, strings []string, count int, models ...hashmodel.Model) {
	t.Helper()

	require.Len(t, strings, count)
	if count == 0 {
		return
	}

	seen := make(map[string]struct{}, count)
	for _, s := range strings {
		_, dup := seen[s]
		require.False(t, dup, "duplicate string %q", s)
		seen[s] = struct{}{}
		require.Len(t, s, len(strings[0]))
	}

	for _, m := range models {
		hashes := make(map[uint32]struct{})
		for _, s := range strings {
			hashes[m.Sum32(s)] = struct{}{}
		}
		assert.Len(t, hashes, 1, "%s hashes for count %d", m.Name(), count)
	}
}

func TestDJBX31ACollider(t *testing.T) {
	c := NewDJBX31ACollider()
	for _, count := range counts {
		strings, err := c.Generate(count)
		require.NoError(t, err)
		assertCollisionSet(t, strings, count, c.Model())
	}
}

func TestMurmur3Collider(t *testing.T) {
	c := NewMurmur3Collider(0)
	models := []hashmodel.Model{
		hashmodel.NewMurmur3(0),
		hashmodel.NewMurmur3(42),
		hashmodel.NewMurmur3(0xdeadbeef),
	}
	for _, count := range counts {
		strings, err := c.Generate(count)
		require.NoError(t, err)
		assertCollisionSet(t, strings, count, models...)
	}
}

func TestMurmur3Roots(t *testing.T) {
	roots, err := deriveMurmur3Roots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.NotEqual(t, roots[0], roots[1])
	assert.Equal(t, roots, NewMurmur3Collider(0).Roots())

	for _, r := range roots {
		assert.Len(t, r, 2*hashmodel.BlockSize)
		assert.True(t, isLineSafe([]byte(r)), "root %q holds a line break", r)
	}

	for _, seed := range []uint32{0, 42, 0xdeadbeef} {
		m := hashmodel.NewMurmur3(seed)
		assert.Equal(t, m.Sum32(roots[0]), m.Sum32(roots[1]), "seed %#x", seed)
	}
}

func TestLineSafePair(t *testing.T) {
	for _, delta := range []uint32{hashmodel.FirstBlockDelta, hashmodel.SecondBlockDelta} {
		block, partner, err := lineSafePair(delta)
		require.NoError(t, err, "delta %#x", delta)
		require.Len(t, block, hashmodel.BlockSize)
		require.Len(t, partner, hashmodel.BlockSize)

		mixed := hashmodel.Mix32(hashmodel.Block([]byte(block))) ^ hashmodel.Mix32(hashmodel.Block([]byte(partner)))
		assert.Equal(t, delta, mixed)
		assert.True(t, isLineSafe([]byte(partner)))
	}
}

func TestIsLineSafe(t *testing.T) {
	assert.True(t, isLineSafe([]byte{0x00, 0x7f, 0xff, 'a'}))
	assert.False(t, isLineSafe([]byte("ab\ncd")))
	assert.False(t, isLineSafe([]byte("ab\rcd")))
}

func TestDJBX31AOrder(t *testing.T) {
	c := NewDJBX31ACollider()

	tests := []struct {
		count    int
		expected []string
	}{
		{0, []string{}},
		{1, []string{"Aa"}},
		{2, []string{"Aa", "BB"}},
		{3, []string{"AaAa", "AaBB", "BBAa"}},
		{4, []string{"AaAa", "AaBB", "BBAa", "BBBB"}},
		{5, []string{"AaAaAaAa", "AaAaAaBB", "AaAaBBAa", "AaAaBBBB", "AaBBAaAa"}},
		{6, []string{"AaAaAaAa", "AaAaAaBB", "AaAaBBAa", "AaAaBBBB", "AaBBAaAa", "AaBBAaBB"}},
	}

	for _, tt := range tests {
		got, err := c.Generate(tt.count)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "Generate(%d)", tt.count)
	}
}

func TestRootsAreNotAliased(t *testing.T) {
	c := NewDJBX31ACollider()

	got, err := c.Generate(2)
	require.NoError(t, err)
	got[0] = "changed"

	roots := c.Roots()
	roots[1] = "changed"

	again, err := c.Generate(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aa", "BB"}, again)
}

func TestSampledCombinationsCollide(t *testing.T) {
	colliders := []Targeted{NewDJBX31ACollider(), NewMurmur3Collider(7)}
	rng := rand.New(rand.NewSource(1))

	for _, c := range colliders {
		// 16 is a complete second round.
		round, err := c.Generate(16)
		require.NoError(t, err)

		m := c.Model()
		var want uint32
		for i := 0; i < 200; i++ {
			s := round[rng.Intn(len(round))]
			u := round[rng.Intn(len(round))]
			h := m.Sum32(hashmodel.Combine(s, u))
			if i == 0 {
				want = h
				continue
			}
			require.Equal(t, want, h, "%s: %q+%q", m.Name(), s, u)
		}
	}
}

func TestGenerateNegativeCount(t *testing.T) {
	for _, name := range Names() {
		c, err := Resolve(name)
		require.NoError(t, err)

		_, err = c.Generate(-1)
		assert.ErrorIs(t, err, ErrInvalidCount, name)
	}
}

func TestGenerateZero(t *testing.T) {
	for _, name := range Names() {
		c, err := Resolve(name)
		require.NoError(t, err)

		strings, err := c.Generate(0)
		require.NoError(t, err)
		assert.Empty(t, strings, name)
	}
}

func BenchmarkDJBX31AGenerate(b *testing.B) {
	c := NewDJBX31ACollider()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Generate(10000); err != nil {
			b.Fatal(err)
		}
	}
}

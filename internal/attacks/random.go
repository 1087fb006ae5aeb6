package attacks

import (
	"encoding/base64"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultRandomLength is the byte length used by Generate. It renders to
// 20 base64 characters.
const DefaultRandomLength = 15

type RandomConfig struct {
	Length int
	Seed   int64
}

// RandomCollider draws strings that do not collide, as a control group.
// It owns its random source; calls are serialized.
type RandomCollider struct {
	length int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomCollider(config RandomConfig) *RandomCollider {
	length := config.Length
	if length <= 0 {
		length = DefaultRandomLength
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &RandomCollider{
		length: length,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (c *RandomCollider) Length() int {
	return c.length
}

func (c *RandomCollider) Generate(count int) ([]string, error) {
	return c.GenerateLength(count, c.length)
}

// GenerateLength returns count strings of length random bytes each,
// encoded as unpadded URL-safe base64.
func (c *RandomCollider) GenerateLength(count, length int) ([]string, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "count %d", count)
	}
	if length < 1 {
		return nil, errors.Wrapf(ErrInvalidLength, "length %d", length)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	strings := make([]string, count)
	buf := make([]byte, length)
	for i := range strings {
		c.rng.Read(buf)
		strings[i] = base64.RawURLEncoding.EncodeToString(buf)
	}

	return strings, nil
}

// EncodedLength is the character length of a string drawn with length bytes.
func EncodedLength(length int) int {
	return base64.RawURLEncoding.EncodedLen(length)
}

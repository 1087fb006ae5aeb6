package attacks

import (
	"github.com/pkg/errors"
)

const (
	NameDJBX31A = "DJBX31A"
	NameMurmur3 = "Murmur3"
	NameRandom  = "Random"
)

type options struct {
	seed     int64
	length   int
	hashSeed uint32
}

type Option func(*options)

// WithSeed seeds the random source of the Random collider.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLength sets the default byte length of the Random collider.
func WithLength(length int) Option {
	return func(o *options) { o.length = length }
}

// WithHashSeed sets the seed of the model reported by the Murmur3 collider.
func WithHashSeed(seed uint32) Option {
	return func(o *options) { o.hashSeed = seed }
}

func Names() []string {
	return []string{NameDJBX31A, NameMurmur3, NameRandom}
}

// Resolve returns a new collider for one of the names in Names. Any other
// name, including a differently cased one, fails with ErrUnknownCollider.
func Resolve(name string, opts ...Option) (Collider, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch name {
	case NameDJBX31A:
		return NewDJBX31ACollider(), nil
	case NameMurmur3:
		return NewMurmur3Collider(o.hashSeed), nil
	case NameRandom:
		return NewRandomCollider(RandomConfig{Length: o.length, Seed: o.seed}), nil
	default:
		return nil, errors.Wrapf(ErrUnknownCollider, "resolve %q", name)
	}
}

package attacks

import (
	"github.com/pkg/errors"

	"github.com/lth/hashflood/internal/hashmodel"
)

var (
	ErrUnknownCollider = errors.New("unknown collider")
	ErrInvalidCount    = errors.New("invalid count")
	ErrInvalidLength   = errors.New("invalid length")
)

// Collider produces count distinct strings. The returned slice belongs to
// the caller.
type Collider interface {
	Generate(count int) ([]string, error)
}

// Targeted is a Collider whose strings all share one hash under Model.
type Targeted interface {
	Collider
	Model() hashmodel.Model
	Roots() []string
}

// expand grows roots into count strings of one hash.
//
// Each round appends the row-major self-concatenation of the working set to
// a fresh buffer and stops once count strings exist. A round that falls
// short becomes the next working set, squaring its size and doubling the
// string length. roots must hold at least two equal-length strings of one
// hash.
func expand(roots []string, count int) ([]string, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "count %d", count)
	}
	if count == 0 {
		return []string{}, nil
	}
	if count <= len(roots) {
		out := make([]string, count)
		copy(out, roots)
		return out, nil
	}

	work := roots
	for {
		acc := make([]string, 0, min(len(work)*len(work), count))
		for _, s := range work {
			for _, t := range work {
				acc = append(acc, hashmodel.Combine(s, t))
				if len(acc) == count {
					return acc, nil
				}
			}
		}
		work = acc
	}
}

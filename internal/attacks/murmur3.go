package attacks

import (
	"github.com/pkg/errors"

	"github.com/lth/hashflood/internal/hashmodel"
)

var (
	CharsetLower    = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits   = "0123456789"
	CharsetAlphaNum = CharsetLower + CharsetUpper + CharsetDigits
)

var errNoRootBlock = errors.New("no line-safe murmur3 root block")

// Two 8-byte strings that leave the Murmur3 state identical from any
// starting state; see hashmodel.Partner.
var murmur3Roots, murmur3RootsErr = deriveMurmur3Roots()

type Murmur3Collider struct {
	seed uint32
}

// NewMurmur3Collider returns a collider whose Model uses seed. The
// generated strings collide under every seed; seed only selects the model
// reported to callers.
func NewMurmur3Collider(seed uint32) *Murmur3Collider {
	return &Murmur3Collider{seed: seed}
}

func (c *Murmur3Collider) Generate(count int) ([]string, error) {
	if murmur3RootsErr != nil {
		return nil, murmur3RootsErr
	}
	return expand(murmur3Roots, count)
}

func (c *Murmur3Collider) Model() hashmodel.Model {
	return hashmodel.NewMurmur3(c.seed)
}

func (c *Murmur3Collider) Roots() []string {
	return append([]string(nil), murmur3Roots...)
}

func deriveMurmur3Roots() ([]string, error) {
	a1, b1, err := lineSafePair(hashmodel.FirstBlockDelta)
	if err != nil {
		return nil, err
	}
	a2, b2, err := lineSafePair(hashmodel.SecondBlockDelta)
	if err != nil {
		return nil, err
	}
	return []string{a1 + a2, b1 + b2}, nil
}

// lineSafePair walks alphanumeric blocks in order until one has a partner
// for delta without line breaks, so root concatenations survive the
// one-per-line wordlist format. The partner may hold any other byte; for
// the bit-18 delta no alphanumeric block has a printable partner.
func lineSafePair(delta uint32) (string, string, error) {
	charset := []byte(CharsetAlphaNum)
	indices := make([]int, hashmodel.BlockSize)
	block := make([]byte, hashmodel.BlockSize)
	partner := make([]byte, hashmodel.BlockSize)

	for {
		for i, idx := range indices {
			block[i] = charset[idx]
		}

		hashmodel.PutBlock(partner, hashmodel.Partner(hashmodel.Block(block), delta))
		if isLineSafe(partner) {
			return string(block), string(partner), nil
		}

		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(charset) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return "", "", errors.Wrapf(errNoRootBlock, "delta %#x", delta)
		}
	}
}

func isLineSafe(b []byte) bool {
	for _, c := range b {
		if c == '\n' || c == '\r' {
			return false
		}
	}
	return true
}

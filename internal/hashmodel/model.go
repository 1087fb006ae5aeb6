// Package hashmodel implements the string hash functions under attack and
// the laws that let their collisions grow under concatenation.
package hashmodel

// Model is a 32-bit string hash function.
type Model interface {
	Name() string
	Sum32(s string) uint32
}

// Combine joins two members of one collision round.
//
// s and t must both belong to a round whose members share one hash and one
// length. The result then collides with every other Combine of that round.
// Nothing checks this: it holds by the arithmetic of the hash, not at run
// time.
func Combine(s, t string) string {
	return s + t
}

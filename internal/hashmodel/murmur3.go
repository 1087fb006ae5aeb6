package hashmodel

import (
	"encoding/binary"
	"math/bits"

	"github.com/twmb/murmur3"
)

const (
	murmurC1 = 0xcc9e2d51
	murmurC2 = 0x1b873593

	// BlockSize is the number of input bytes Murmur3 consumes per round.
	BlockSize = 4

	// FirstBlockDelta flips the state bit that rotl 13 moves to bit 31.
	FirstBlockDelta uint32 = 1 << 18
	// SecondBlockDelta cancels the bit-31 difference left by FirstBlockDelta.
	// A bit-31 difference survives h*5+c unchanged because 4<<31 wraps to 0.
	SecondBlockDelta uint32 = 1 << 31
)

var (
	murmurC1Inv = inverse32(murmurC1)
	murmurC2Inv = inverse32(murmurC2)
)

// Murmur3 is MurmurHash3 x86_32 with a fixed seed.
type Murmur3 struct {
	Seed uint32
}

func NewMurmur3(seed uint32) Murmur3 {
	return Murmur3{Seed: seed}
}

func (Murmur3) Name() string {
	return "Murmur3"
}

func (m Murmur3) Sum32(s string) uint32 {
	return murmur3.SeedSum32(m.Seed, []byte(s))
}

// Mix32 is the per-block scramble applied before a block enters the state.
func Mix32(k uint32) uint32 {
	k *= murmurC1
	k = bits.RotateLeft32(k, 15)
	k *= murmurC2
	return k
}

// Unmix32 inverts Mix32.
func Unmix32(k uint32) uint32 {
	k *= murmurC2Inv
	k = bits.RotateLeft32(k, -15)
	k *= murmurC1Inv
	return k
}

// Partner returns the block whose mixed value differs from the mixed value
// of block by exactly delta.
//
// Two 8-byte inputs a1|a2 and Partner(a1, FirstBlockDelta)|Partner(a2,
// SecondBlockDelta) leave the Murmur3 state identical whatever it was
// before, so they collide under every seed and stay colliding when
// concatenated with each other.
func Partner(block, delta uint32) uint32 {
	return Unmix32(Mix32(block) ^ delta)
}

// Block reads a 4-byte little-endian block.
func Block(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// PutBlock writes a 4-byte little-endian block.
func PutBlock(b []byte, k uint32) {
	binary.LittleEndian.PutUint32(b, k)
}

// inverse32 returns the multiplicative inverse of an odd a modulo 2^32.
// a is its own inverse modulo 8; each Newton step doubles the precision.
func inverse32(a uint32) uint32 {
	x := a
	for i := 0; i < 4; i++ {
		x *= 2 - a*x
	}
	return x
}

package hashmodel

const djbMultiplier = 31

// DJBX31A is the "times 31, add" polynomial hash used by Java's
// String.hashCode. It is unseeded; input is hashed byte by byte, which
// matches Java for ASCII strings.
type DJBX31A struct{}

func (DJBX31A) Name() string {
	return "DJBX31A"
}

func (DJBX31A) Sum32(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = djbMultiplier*h + uint32(s[i])
	}
	return h
}

// Compose returns Sum32(s+t) given hs = Sum32(s), ht = Sum32(t) and
// lenT = len(t). The result depends on s only through hs, so any two
// strings of equal hash can be swapped as prefix.
func (DJBX31A) Compose(hs, ht uint32, lenT int) uint32 {
	return hs*pow31(lenT) + ht
}

func pow31(n int) uint32 {
	p, base := uint32(1), uint32(djbMultiplier)
	for n > 0 {
		if n&1 == 1 {
			p *= base
		}
		base *= base
		n >>= 1
	}
	return p
}

package viewer

import "math/rand/v2"

// NextIndex returns the index after i, wrapping to 0 after the last.
func NextIndex(i, n int) int {
	return (i + 1) % n
}

// PrevIndex returns the index before i, wrapping to n-1 before the first.
func PrevIndex(i, n int) int {
	return (i - 1 + n) % n
}

// RandomIndex returns an index in [0, n) chosen uniformly from every index
// except i. n must be at least 2.
func RandomIndex(r *rand.Rand, i, n int) int {
	j := r.IntN(n - 1)
	if j >= i {
		j++
	}
	return j
}

// targetIndex resolves a direction against the current index.
func (m *Model) targetIndex(d Direction, i, n int) int {
	switch d {
	case Prev:
		return PrevIndex(i, n)
	case Random:
		return RandomIndex(m.rand, i, n)
	default:
		return NextIndex(i, n)
	}
}

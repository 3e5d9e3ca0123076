package oblivious

import (
	"fmt"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// Shuffle randomly permutes rows in place using a 2-way Waksman permutation
// network. len(rows) must be a power of two; NextPowerOfTwo and Pad below
// exist to get a caller there. This is a direct port of
// original_source/app/core_logic/algorithms/oblivious_waksman.c's
// waksman_recursive, with the AES-CTR switch-bit source replaced by
// switchPRF (see prf.go) and the SGX entry_t encrypt/decrypt wrapper
// dropped — this port has no enclave boundary to cross.
func Shuffle(rows []core.Entry) error {
	n := len(rows)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("oblivious: Shuffle requires a power-of-two length, got %d", n)
	}

	prf, err := newSwitchPRF()
	if err != nil {
		return err
	}
	waksmanRecursive(rows, 0, 1, n, 0, prf)
	return nil
}

// waksmanRecursive shuffles the n elements of the group starting at start
// with the given stride between consecutive group members. level seeds the
// switch-bit PRF so that each recursion depth draws independent bits.
func waksmanRecursive(rows []core.Entry, start, stride, n int, level uint64, prf *switchPRF) {
	if n <= 1 {
		return
	}

	if n == 2 {
		swap := prf.bit(level, uint64(start))
		CondSwap(&rows[start], &rows[start+stride], swap)
		return
	}

	half := n / 2

	for i := 0; i < half; i++ {
		idx1 := start + (i*2)*stride
		idx2 := start + (i*2+1)*stride
		swap := prf.bit(level, uint64(idx1))
		CondSwap(&rows[idx1], &rows[idx2], swap)
	}

	waksmanRecursive(rows, start, stride*2, half, level+1, prf)
	waksmanRecursive(rows, start+stride, stride*2, half, level+1, prf)

	numOutputSwitches := 0
	if half > 1 {
		numOutputSwitches = half - 1
	}
	for i := 1; i <= numOutputSwitches; i++ {
		idx1 := start + (i*2)*stride
		idx2 := start + (i*2+1)*stride
		swap := prf.bit(level+10000, uint64(idx1))
		CondSwap(&rows[idx1], &rows[idx2], swap)
	}
}

// NextPowerOfTwo returns the smallest power of two >= n (1 when n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pad appends SORT_PADDING rows until len(rows) reaches size, which must
// already be >= len(rows). Padding is stripped again with core.NonPadding
// once the caller's oblivious section is done with it.
func Pad(rows []core.Entry, size int) []core.Entry {
	for len(rows) < size {
		rows = append(rows, core.PaddingEntry())
	}
	return rows
}

// Package oblivious implements the data-independent primitives the join
// phases are built from: a constant-time conditional swap, a Waksman
// permutation network shuffle, a k-way decomposition for batches too large
// to shuffle directly, and the shuffle-then-merge-sort used wherever a
// table must be put in sorted order without revealing its prior order.
//
// Every exported function here accesses memory the same way regardless of
// the values it is given; only the sizes of its inputs may vary the access
// pattern. Callers are responsible for keeping sizes themselves
// data-independent (padding to a fixed shape before calling in).
package oblivious

import (
	"unsafe"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// CondSwap exchanges *a and *b when swap is true, and leaves them untouched
// otherwise, without branching on swap. It ported from the original
// project's byte-level XOR swap (oblivious_waksman.c's oblivious_swap),
// adapted from raw entry_t buffers to core.Entry via unsafe.Slice over the
// struct's own memory — the struct holds only fixed-width scalar fields, so
// no pointer ever crosses the byte view.
func CondSwap(a, b *core.Entry, swap bool) {
	mask := -*(*byte)(unsafe.Pointer(&swap))

	size := int(unsafe.Sizeof(core.Entry{}))
	pa := unsafe.Slice((*byte)(unsafe.Pointer(a)), size)
	pb := unsafe.Slice((*byte)(unsafe.Pointer(b)), size)

	for i := 0; i < size; i++ {
		diff := pa[i] ^ pb[i]
		diff &= mask
		pa[i] ^= diff
		pb[i] ^= diff
	}
}

package oblivious

import (
	"fmt"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// DefaultShuffleThreshold and DefaultKWayFanout are the Go-side defaults for
// MAX_BATCH_SIZE and MERGE_SORT_K from
// original_source/common/constants.h. internal/config may override both
// via its tuning file; ShuffleLarge and MergeSort take them as explicit
// parameters rather than reading a package-level config so this package
// stays free of any dependency on internal/config.
const (
	DefaultShuffleThreshold = 2000
	DefaultKWayFanout       = 8
)

// GroupIO is the explicit read/write capability ShuffleLarge threads
// through its decompose and reconstruct rounds, replacing the original
// project's process-global "current_instance" ocall callbacks
// (k_way_shuffle.c's ocall_flush_to_group/ocall_refill_from_group) with a
// value passed in as a parameter. A non-memory-backed implementation (e.g.
// spilling to a temp file) can satisfy the same interface without changing
// ShuffleLarge itself.
type GroupIO interface {
	// Push appends e to group's buffer.
	Push(group int, e core.Entry)
	// Pull removes and returns the next row previously pushed to group, in
	// FIFO order, and reports whether one was available.
	Pull(group int) (core.Entry, bool)
}

// memGroupIO is the in-memory GroupIO this port uses everywhere: every
// table the engine processes fits in memory, so there is no need for
// k_way_shuffle.c's bounded-buffer flush/refill machinery built for an
// enclave-to-host boundary — each group is simply a FIFO queue.
type memGroupIO struct {
	groups [][]core.Entry
	heads  []int
}

func newMemGroupIO(k int) *memGroupIO {
	return &memGroupIO{groups: make([][]core.Entry, k), heads: make([]int, k)}
}

func (g *memGroupIO) Push(group int, e core.Entry) {
	g.groups[group] = append(g.groups[group], e)
}

func (g *memGroupIO) Pull(group int) (core.Entry, bool) {
	if g.heads[group] >= len(g.groups[group]) {
		return core.Entry{}, false
	}
	e := g.groups[group][g.heads[group]]
	g.heads[group]++
	return e, true
}

// ShuffleLarge shuffles rows whose length exceeds threshold by decomposing
// into k groups, one round of k elements at a time, shuffling each round's
// k-tuple with the same Waksman network Shuffle uses, then independently
// re-shuffling each resulting group of size n/k (recursing through
// ShuffleLarge again if that group is itself still above threshold). This
// is the Go port of k_way_shuffle.c's decompose/reconstruct pair: the
// per-round Waksman pass over k elements is exactly
// k_way_shuffle_decompose's inner loop, and the per-group re-shuffle after
// reconstruction is this port's stand-in for the original's recursive call
// into the next decomposition level; a group above threshold whose size is
// not a multiple of k is first padded up to one. At or below threshold,
// rows are padded to a power of two and Waksman-shuffled directly. Above
// threshold, len(rows) must be a multiple of k. The result holds every
// non-padding row of the input; SORT_PADDING rows (the caller's and those
// added here) are dropped.
func ShuffleLarge(rows []core.Entry, k, threshold int) ([]core.Entry, error) {
	n := len(rows)
	if n == 0 {
		return rows, nil
	}
	if n <= threshold {
		padded := Pad(append([]core.Entry(nil), rows...), NextPowerOfTwo(n))
		if err := Shuffle(padded); err != nil {
			return nil, err
		}
		return core.NonPadding(padded), nil
	}
	if n%k != 0 {
		return nil, fmt.Errorf("oblivious: ShuffleLarge requires length a multiple of k=%d, got %d", k, n)
	}

	prf, err := newSwitchPRF()
	if err != nil {
		return nil, err
	}

	io := newMemGroupIO(k)
	rounds := n / k
	group := make([]core.Entry, k)

	for round := 0; round < rounds; round++ {
		copy(group, rows[round*k:round*k+k])
		waksmanRecursive(group, 0, 1, k, uint64(round)*1_000_000, prf)
		for i := 0; i < k; i++ {
			io.Push(i, group[i])
		}
	}

	out := make([]core.Entry, 0, n)
	for g := 0; g < k; g++ {
		bucket := make([]core.Entry, 0, rounds)
		for {
			e, ok := io.Pull(g)
			if !ok {
				break
			}
			bucket = append(bucket, e)
		}
		if len(bucket) > threshold && len(bucket)%k != 0 {
			bucket = Pad(bucket, (len(bucket)/k+1)*k)
		}
		shuffled, err := ShuffleLarge(bucket, k, threshold)
		if err != nil {
			return nil, err
		}
		out = append(out, shuffled...)
	}
	return out, nil
}

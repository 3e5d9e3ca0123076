package oblivious

import (
	"container/heap"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// MergeSort sorts rows by cmp using an external-style k-way merge: split
// into runs of at most runSize, sort each run in memory, then repeatedly
// merge up to fanout runs at a time until one remains. It is a
// non-oblivious sort — its access pattern depends on the data's relative
// order — and must only be used immediately before a step whose own
// obliviousness hides that pattern (ShuffleSort does exactly this; see
// spec's note on "shuffle-then-sort").
//
// This is the Go shape of
// original_source/app/algorithms/merge_sort_manager.h's MergeSortManager:
// create_sorted_runs is the in-memory sort below, and k_way_merge /
// merge_runs_recursive are mergeRounds, with the ocall-driven bounded
// buffer refill replaced by ordinary slice indexing since every run here
// already lives in memory.
func MergeSort(rows []core.Entry, cmp Comparator, runSize, fanout int) []core.Entry {
	if len(rows) == 0 {
		return rows
	}
	if runSize <= 0 {
		runSize = len(rows)
	}
	if fanout < 2 {
		fanout = 2
	}

	runs := createSortedRuns(rows, cmp, runSize)
	for len(runs) > 1 {
		runs = mergeRound(runs, cmp, fanout)
	}
	return runs[0]
}

func createSortedRuns(rows []core.Entry, cmp Comparator, runSize int) [][]core.Entry {
	var runs [][]core.Entry
	for start := 0; start < len(rows); start += runSize {
		end := start + runSize
		if end > len(rows) {
			end = len(rows)
		}
		run := append([]core.Entry(nil), rows[start:end]...)
		sortRunInMemory(run, cmp)
		runs = append(runs, run)
	}
	return runs
}

// sortRunInMemory sorts run in place with a binary heap sort (build a max-
// heap, then repeatedly swap the root with the last unsorted element and
// sift down), matching spec's "standard in-place heap sort" for Phase 1
// runs.
func sortRunInMemory(run []core.Entry, cmp Comparator) {
	n := len(run)
	for root := n/2 - 1; root >= 0; root-- {
		siftDown(run, cmp, root, n)
	}
	for end := n - 1; end > 0; end-- {
		run[0], run[end] = run[end], run[0]
		siftDown(run, cmp, 0, end)
	}
}

// siftDown restores the max-heap property of run[:size] rooted at i, where
// Compare(cmp, a, b) > 0 means a sorts after b (so the heap's root holds the
// run's current maximum under cmp).
func siftDown(run []core.Entry, cmp Comparator, i, size int) {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < size && Compare(cmp, &run[left], &run[largest]) > 0 {
			largest = left
		}
		if right < size && Compare(cmp, &run[right], &run[largest]) > 0 {
			largest = right
		}
		if largest == i {
			return
		}
		run[i], run[largest] = run[largest], run[i]
		i = largest
	}
}

// mergeRound merges runs fanout at a time, returning the next (shorter)
// list of runs.
func mergeRound(runs [][]core.Entry, cmp Comparator, fanout int) [][]core.Entry {
	var next [][]core.Entry
	for i := 0; i < len(runs); i += fanout {
		end := i + fanout
		if end > len(runs) {
			end = len(runs)
		}
		next = append(next, kWayMerge(runs[i:end], cmp))
	}
	return next
}

type mergeItem struct {
	entry  core.Entry
	runIdx int
}

type mergeHeap struct {
	items []mergeItem
	cmp   Comparator
}

func (h mergeHeap) Len() int { return len(h.items) }
func (h mergeHeap) Less(i, j int) bool {
	return Compare(h.cmp, &h.items[i].entry, &h.items[j].entry) < 0
}
func (h mergeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap) Push(x any)   { h.items = append(h.items, x.(mergeItem)) }
func (h *mergeHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// kWayMerge merges the given runs (already individually sorted by cmp)
// into one run, using a heap of size len(runs) keyed by the current head
// of each run, mirroring k_way_merge's small-heap design.
func kWayMerge(runs [][]core.Entry, cmp Comparator) []core.Entry {
	positions := make([]int, len(runs))
	h := &mergeHeap{cmp: cmp}
	heap.Init(h)
	for i, run := range runs {
		if len(run) > 0 {
			heap.Push(h, mergeItem{entry: run[0], runIdx: i})
			positions[i] = 1
		}
	}

	total := 0
	for _, run := range runs {
		total += len(run)
	}
	out := make([]core.Entry, 0, total)

	for h.Len() > 0 {
		top := heap.Pop(h).(mergeItem)
		out = append(out, top.entry)
		run := runs[top.runIdx]
		pos := positions[top.runIdx]
		if pos < len(run) {
			heap.Push(h, mergeItem{entry: run[pos], runIdx: top.runIdx})
			positions[top.runIdx] = pos + 1
		}
	}
	return out
}

package oblivious

import "github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"

// ShuffleSort produces rows in cmp order with an access pattern that
// depends only on len(rows): first randomize the rows' positions with a
// Waksman shuffle (or the k-way decomposition above threshold), which
// erases any information their original order carried, then run the
// (non-oblivious) external merge sort on the now-unordered data. Because an
// observer already learned nothing from the shuffle step, the merge sort's
// data-dependent access pattern over post-shuffle positions reveals nothing
// about the pre-shuffle order either. This "shuffle-then-sort" composition
// is spec'd directly off the original project's convention of never
// sorting a table that has not first passed through a shuffle.
//
// SORT_PADDING rows needed to round len(rows) up for the shuffle step are
// added and removed internally; callers receive back exactly the rows they
// passed in, sorted.
func ShuffleSort(rows []core.Entry, cmp Comparator, k, threshold, runSize, fanout int) ([]core.Entry, error) {
	n := len(rows)
	if n == 0 {
		return rows, nil
	}

	var shuffled []core.Entry
	var err error
	if n > threshold {
		padded := n
		if padded%k != 0 {
			padded = n + (k - n%k)
		}
		work := Pad(append([]core.Entry(nil), rows...), padded)
		shuffled, err = ShuffleLarge(work, k, threshold)
		if err != nil {
			return nil, err
		}
	} else {
		work := Pad(append([]core.Entry(nil), rows...), NextPowerOfTwo(n))
		if err = Shuffle(work); err != nil {
			return nil, err
		}
		shuffled = work
	}

	sorted := MergeSort(shuffled, cmp, runSize, fanout)
	return core.NonPadding(sorted), nil
}

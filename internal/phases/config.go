// Package phases implements the four traversal passes the join tree is
// evaluated with (bottom-up multiplicity counting, top-down multiplicity
// propagation, distribute-expand, align-concat) plus the filter applicator
// that runs ahead of them. Every sort these passes need on a table whose
// prior order might leak information runs through
// internal/oblivious.ShuffleSort, EndFirst included; the one sort that does
// not is computeWindows in align.go, which sorts its combined table
// directly with sort.SliceStable.
package phases

import (
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/oblivious"
)

// Config bundles the oblivious primitives' size knobs each phase needs to
// shuffle and sort combined tables. internal/config's tuning file
// populates one of these for the orchestrator to pass down; phases itself
// takes no dependency on internal/config so it stays usable without a CLI
// or a config file present.
type Config struct {
	KWayFanout       int
	ShuffleThreshold int
	MergeRunSize     int
	MergeFanout      int
}

// DefaultConfig mirrors original_source/common/constants.h's
// MAX_BATCH_SIZE/MERGE_SORT_K/MERGE_BUFFER_SIZE defaults.
func DefaultConfig() Config {
	return Config{
		KWayFanout:       oblivious.DefaultKWayFanout,
		ShuffleThreshold: oblivious.DefaultShuffleThreshold,
		MergeRunSize:     oblivious.DefaultShuffleThreshold / oblivious.DefaultKWayFanout,
		MergeFanout:      oblivious.DefaultKWayFanout,
	}
}

// sort is the one place phases call into oblivious.ShuffleSort, so every
// sort in this package is parameterized by the same Config.
func (c Config) sort(rows []core.Entry, cmp oblivious.Comparator) ([]core.Entry, error) {
	return oblivious.ShuffleSort(rows, cmp, c.KWayFanout, c.ShuffleThreshold, c.MergeRunSize, c.MergeFanout)
}

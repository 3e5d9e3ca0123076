// Package config supplies the tuning knobs and debug tracing the
// oblivious core itself takes no opinion on. A tuning file is optional: an
// engine with no file loaded runs on the same constants
// original_source/common/constants.h hard-codes. This mirrors how the
// teacher's internal/parser/toml decodes a TOML document with
// github.com/BurntSushi/toml, repurposed here for a handful of size
// constants instead of a schema definition.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/oblivious"
)

// Config bundles the oblivious primitives' size knobs. Field names match
// internal/phases.Config exactly; engine.Execute copies between the two so
// internal/phases keeps no dependency on internal/config.
type Config struct {
	KWayFanout       int `toml:"kway_fanout"`
	ShuffleThreshold int `toml:"shuffle_threshold"`
	MergeRunSize     int `toml:"merge_run_size"`
	MergeFanout      int `toml:"merge_fanout"`

	DebugLevel int
	DebugDir   string
}

// Default mirrors original_source/common/constants.h's
// MAX_BATCH_SIZE/MERGE_SORT_K/MERGE_BUFFER_SIZE defaults, with debug
// tracing off.
func Default() Config {
	return Config{
		KWayFanout:       oblivious.DefaultKWayFanout,
		ShuffleThreshold: oblivious.DefaultShuffleThreshold,
		MergeRunSize:     oblivious.DefaultShuffleThreshold / oblivious.DefaultKWayFanout,
		MergeFanout:      oblivious.DefaultKWayFanout,
	}
}

// tuningFile is the on-disk shape of an optional tuning TOML document:
//
//	kway_fanout       = 8
//	shuffle_threshold = 2000
//	merge_run_size    = 250
//	merge_fanout      = 8
type tuningFile struct {
	KWayFanout       int `toml:"kway_fanout"`
	ShuffleThreshold int `toml:"shuffle_threshold"`
	MergeRunSize     int `toml:"merge_run_size"`
	MergeFanout      int `toml:"merge_fanout"`
}

// Load reads a tuning file at path, overriding Default()'s constants with
// whichever fields the file sets (a field absent from the file, or the
// whole file absent, keeps the default). Loading is the CLI's job, not
// engine's: internal/engine takes a fully-resolved Config and never
// touches the filesystem for it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var tf tuningFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		return cfg, fmt.Errorf("config: failed to load tuning file %s: %w", path, err)
	}

	if tf.KWayFanout != 0 {
		cfg.KWayFanout = tf.KWayFanout
	}
	if tf.ShuffleThreshold != 0 {
		cfg.ShuffleThreshold = tf.ShuffleThreshold
	}
	if tf.MergeRunSize != 0 {
		cfg.MergeRunSize = tf.MergeRunSize
	}
	if tf.MergeFanout != 0 {
		cfg.MergeFanout = tf.MergeFanout
	}
	return cfg, nil
}

// FromEnvironment reads OBJOIN_DEBUG (an integer 0-5) and OBJOIN_DEBUG_DIR,
// per spec.md section 6's optional, non-load-bearing environment
// variables, and sets them on cfg.
func FromEnvironment(cfg Config) Config {
	if v := os.Getenv("OBJOIN_DEBUG"); v != "" {
		var level int
		if _, err := fmt.Sscanf(v, "%d", &level); err == nil && level >= 0 && level <= 5 {
			cfg.DebugLevel = level
		}
	}
	cfg.DebugDir = os.Getenv("OBJOIN_DEBUG_DIR")
	return cfg
}

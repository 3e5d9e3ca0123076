package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// Debug levels, ported from original_source/common/debug_util.h: higher
// includes all lower.
const (
	DebugNone  = 0
	DebugError = 1
	DebugWarn  = 2
	DebugInfo  = 3
	DebugDebug = 4
	DebugTrace = 5
)

// Logger writes leveled diagnostics to os.Stderr and, at DebugInfo and
// above, dumps phase table snapshots as CSV into Dir — the Go equivalent
// of debug_util.h's DEBUG_INFO/DEBUG_TRACE macros and
// debug_manager.cpp's per-phase dump_table, minus the compile-time
// on/off switch (a runtime level check costs nothing worth avoiding here).
// It never substitutes for the engine's own error returns: a Logger call
// only ever writes a line, it can't fail a query.
type Logger struct {
	Level int
	Dir   string
}

// NewLogger builds a Logger from a resolved Config.
func NewLogger(cfg Config) *Logger {
	return &Logger{Level: cfg.DebugLevel, Dir: cfg.DebugDir}
}

func (l *Logger) log(level int, tag, format string, args ...interface{}) {
	if l == nil || l.Level < level {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]interface{}{tag}, args...)...)
}

// Error logs at DebugError.
func (l *Logger) Error(format string, args ...interface{}) { l.log(DebugError, "error", format, args...) }

// Warn logs at DebugWarn.
func (l *Logger) Warn(format string, args ...interface{}) { l.log(DebugWarn, "warn", format, args...) }

// Info logs at DebugInfo.
func (l *Logger) Info(format string, args ...interface{}) { l.log(DebugInfo, "info", format, args...) }

// Trace logs at DebugTrace.
func (l *Logger) Trace(format string, args ...interface{}) { l.log(DebugTrace, "trace", format, args...) }

// DumpTable writes t as CSV under Dir/<phase>.<alias>.csv when the debug
// level is at least DebugInfo, echoing debug_manager.cpp's per-phase table
// dump. It is a no-op below that level or with no Dir configured. Nothing
// in internal/phases calls it, keeping the oblivious core itself free of
// I/O; neither internal/engine nor cmd/objoin calls it either, so a run
// writes no table dumps.
func (l *Logger) DumpTable(phase, alias string, t *core.Table) error {
	if l == nil || l.Level < DebugInfo || l.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create debug dir %s: %w", l.Dir, err)
	}

	path := filepath.Join(l.Dir, fmt.Sprintf("%s.%s.csv", phase, alias))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create debug dump %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, strings.Join(t.Schema, ",")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		vals := make([]string, len(t.Schema))
		for i := range t.Schema {
			vals[i] = fmt.Sprintf("%d", row.Attribute(i))
		}
		if _, err := fmt.Fprintln(f, strings.Join(vals, ",")); err != nil {
			return err
		}
	}
	return nil
}

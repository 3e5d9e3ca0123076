package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

func TestDumpTableSkippedBelowDebugInfo(t *testing.T) {
	dir := t.TempDir()
	logger := &Logger{Level: DebugWarn, Dir: dir}

	tbl := core.NewTable("t", []string{"a"})
	require.NoError(t, logger.DumpTable("bottom_up", "t", tbl))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDumpTableWritesCSVAtDebugInfo(t *testing.T) {
	dir := t.TempDir()
	logger := &Logger{Level: DebugInfo, Dir: dir}

	tbl := core.NewTable("t", []string{"a", "b"})
	row := core.NewEntry(2)
	row.SetAttribute(0, 1)
	row.SetAttribute(1, 2)
	tbl.AddRow(row)

	require.NoError(t, logger.DumpTable("bottom_up", "t", tbl))

	contents, err := os.ReadFile(filepath.Join(dir, "bottom_up.t.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(contents))
}

func TestDumpTableNoopWithoutDir(t *testing.T) {
	logger := &Logger{Level: DebugTrace, Dir: ""}
	tbl := core.NewTable("t", []string{"a"})
	assert.NoError(t, logger.DumpTable("phase", "t", tbl))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("should not panic")
	assert.NoError(t, logger.DumpTable("p", "t", core.NewTable("t", nil)))
}

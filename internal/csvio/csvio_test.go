package csvio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

func TestLoadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,cust\n1,10\n2, 20 \n"), 0o644))

	tbl, err := LoadFile(path, "orders")
	require.NoError(t, err)
	assert.Equal(t, "orders", tbl.Name)
	assert.Equal(t, []string{"id", "cust"}, tbl.Schema)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, int32(1), tbl.Rows[0].Attribute(0))
	assert.Equal(t, int32(10), tbl.Rows[0].Attribute(1))
	assert.Equal(t, int32(2), tbl.Rows[1].Attribute(0))
	assert.Equal(t, int32(20), tbl.Rows[1].Attribute(1))
}

func TestLoadFileSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n\n2\n"), 0o644))

	tbl, err := LoadFile(path, "t")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestLoadFileRejectsWrongFieldCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1\n"), 0o644))

	_, err := LoadFile(path, "t")
	require.Error(t, err)
}

func TestLoadFileRejectsNonInteger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\nnope\n"), 0o644))

	_, err := LoadFile(path, "t")
	require.Error(t, err)
}

func TestLoadFileMissingHeaderErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err := LoadFile(path, "empty")
	require.Error(t, err)
}

func TestLoadFileSaturatesOutOfRangeIntegers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	content := "a\n99999999999\n-99999999999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := LoadFile(path, "t")
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), tbl.Rows[0].Attribute(0))
	assert.Equal(t, int32(math.MinInt32), tbl.Rows[1].Attribute(0))
}

func TestLoadDirKeysByFilenameStem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.csv"), []byte("id\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.csv"), []byte("id\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	tables, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Contains(t, tables, "orders")
	assert.Contains(t, tables, "customers")
}

func TestWriteFileThenLoadFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	tbl := core.NewTable("result", []string{"x", "y"})
	row := core.NewEntry(2)
	row.SetAttribute(0, -5)
	row.SetAttribute(1, 42)
	tbl.AddRow(row)

	path := filepath.Join(dir, "out.csv")
	require.NoError(t, WriteFile(path, tbl))

	reloaded, err := LoadFile(path, "result")
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
	assert.Equal(t, int32(-5), reloaded.Rows[0].Attribute(0))
	assert.Equal(t, int32(42), reloaded.Rows[0].Attribute(1))
}

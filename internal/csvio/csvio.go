// Package csvio loads base tables from, and writes result tables to, the
// plain-CSV format spec.md section 6 defines: a comma-separated header of
// column names, then one row per line of signed-64-bit integers saturated
// to signed 32-bit, no quoting, whitespace trimmed. It is the CLI's only
// I/O boundary — internal/engine never touches a filesystem path.
package csvio

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// LoadDir reads every *.csv file directly inside dir and returns a table
// per file, keyed by the filename stem (spec.md section 6: "treats the
// filename stem as the table name").
func LoadDir(dir string) (map[string]*core.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to read input dir %s: %w", dir, err)
	}

	tables := make(map[string]*core.Table)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		t, err := LoadFile(filepath.Join(dir, e.Name()), name)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return tables, nil
}

// LoadFile reads a single CSV file into a table named name.
func LoadFile(path, name string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("csvio: %s: missing header line", path)
	}
	schema := splitTrim(scanner.Text())
	t := core.NewTable(name, schema)

	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := splitTrim(text)
		if len(fields) != len(schema) {
			return nil, fmt.Errorf("csvio: %s:%d: expected %d fields, got %d", path, line, len(schema), len(fields))
		}
		row := core.NewEntry(len(schema))
		for i, field := range fields {
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("csvio: %s:%d: invalid integer %q: %w", path, line, field, err)
			}
			row.SetAttribute(i, saturate32(v))
		}
		t.AddRow(row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}
	return t, nil
}

// WriteFile writes t to path in the same CSV shape LoadFile reads.
func WriteFile(path string, t *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio: failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, strings.Join(t.Schema, ",")); err != nil {
		return err
	}
	for i := range t.Rows {
		row := &t.Rows[i]
		vals := make([]string, len(t.Schema))
		for j := range t.Schema {
			vals[j] = strconv.FormatInt(int64(row.Attribute(j)), 10)
		}
		if _, err := fmt.Fprintln(w, strings.Join(vals, ",")); err != nil {
			return err
		}
	}
	return w.Flush()
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func saturate32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

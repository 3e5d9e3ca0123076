// Package engine implements the orchestrator (C12): it wires the query
// parser, join-tree builder, filter applicator, and the four join phases
// together into the single entry point original_source/impl/src/app calls
// execute() — parse, build tree, filter, bottom-up, top-down,
// distribute-expand, align-concat, concatenate.
package engine

import (
	"fmt"
	"time"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/config"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/phases"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/query"
)

// PhaseStat is one phase's wall-clock duration, in the order the
// orchestrator ran it.
type PhaseStat struct {
	Name     string
	Duration time.Duration
}

// Stats reports the bookkeeping original_source/impl/src/app/debug_manager.cpp
// prints at the end of a run: table sizes and per-phase timing. It carries
// no information the join itself depends on.
type Stats struct {
	InputRows  map[string]int
	OutputRows int
	Phases     []PhaseStat
}

// Execute runs a parsed-on-the-fly SQL query against tables (keyed by base
// table name, as loaded from CSV) and returns the joined result table, per
// spec section 4.11. The result schema is every FROM-clause table's columns,
// in FROM order, qualified as "alias.column" to keep same-named columns
// from different tables distinct (spec.md doesn't name a convention here;
// this is the orchestrator's own choice, not a join-semantics decision).
func Execute(sql string, tables map[string]*core.Table, cfg config.Config) (*core.Table, Stats, error) {
	var stats Stats
	stats.InputRows = make(map[string]int)
	for name, t := range tables {
		stats.InputRows[name] = t.Len()
	}

	timed := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		stats.Phases = append(stats.Phases, PhaseStat{Name: name, Duration: time.Since(start)})
		return err
	}

	var q query.ParsedQuery
	if err := timed("parse", func() error {
		var err error
		q, err = query.Parse(sql)
		return err
	}); err != nil {
		return nil, stats, err
	}

	aliasTables := make(map[string]*core.Table, len(q.Tables))
	for _, ref := range q.Tables {
		base, ok := tables[ref.Table]
		if !ok {
			return nil, stats, &jointree.SchemaError{Alias: ref.Table, Message: "no input table loaded with this name"}
		}
		t := base.Clone()
		t.Name = ref.Alias
		t.InitLeafMultiplicities()
		aliasTables[ref.Alias] = t
	}

	var root *jointree.Node
	var nodes map[string]*jointree.Node
	if err := timed("build_tree", func() error {
		var err error
		root, nodes, err = jointree.Build(q, aliasTables)
		return err
	}); err != nil {
		return nil, stats, err
	}

	if err := timed("filter", func() error {
		return phases.ApplyFilters(aliasTables, q.Filters)
	}); err != nil {
		return nil, stats, err
	}

	phaseCfg := phases.Config{
		KWayFanout:       cfg.KWayFanout,
		ShuffleThreshold: cfg.ShuffleThreshold,
		MergeRunSize:     cfg.MergeRunSize,
		MergeFanout:      cfg.MergeFanout,
	}

	if err := timed("bottom_up", func() error {
		return phases.BottomUp(root, phaseCfg)
	}); err != nil {
		return nil, stats, err
	}

	if err := timed("top_down", func() error {
		return phases.TopDown(root, phaseCfg)
	}); err != nil {
		return nil, stats, err
	}

	expanded := make(map[string]*core.Table, len(nodes))
	if err := timed("distribute_expand", func() error {
		for alias, n := range nodes {
			expanded[alias] = phases.DistributeExpand(n.Table)
		}
		return nil
	}); err != nil {
		return nil, stats, err
	}

	if err := timed("align_concat", func() error {
		return phases.AlignConcat(root, expanded, phaseCfg)
	}); err != nil {
		return nil, stats, err
	}

	result, err := concatenate(q.Tables, expanded)
	if err != nil {
		return nil, stats, err
	}
	stats.OutputRows = result.Len()

	return result, stats, nil
}

// concatenate builds the result table: one row per position, columns
// stacked in FROM-clause order, after align-concat has guaranteed every
// node's expanded table has the same length and the same row ordering.
func concatenate(refs []query.TableRef, expanded map[string]*core.Table) (*core.Table, error) {
	if len(refs) == 0 {
		return core.NewTable("result", nil), nil
	}

	n := -1
	for _, ref := range refs {
		t, ok := expanded[ref.Alias]
		if !ok {
			return nil, &InternalInvariantViolation{Phase: "align_concat", Message: "no expanded table for alias " + ref.Alias}
		}
		if n == -1 {
			n = t.Len()
		} else if t.Len() != n {
			return nil, &InternalInvariantViolation{
				Phase:   "align_concat",
				Message: fmt.Sprintf("alias %s has %d rows, expected %d (all aligned tables must share one length)", ref.Alias, t.Len(), n),
			}
		}
	}

	var schema []string
	for _, ref := range refs {
		t := expanded[ref.Alias]
		for _, col := range t.Schema {
			schema = append(schema, ref.Alias+"."+col)
		}
	}

	result := core.NewTable("result", schema)
	for i := 0; i < n; i++ {
		row := core.NewEntry(len(schema))
		col := 0
		for _, ref := range refs {
			t := expanded[ref.Alias]
			for j := range t.Schema {
				row.SetAttribute(col, t.Rows[i].Attribute(j))
				col++
			}
		}
		result.AddRow(row)
	}
	return result, nil
}

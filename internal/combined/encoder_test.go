package combined

import (
	"testing"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesExpectedShapeAndTags(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(rowWithAttr(0, 10))
	parent.AddRow(rowWithAttr(0, 20))

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(rowWithAttr(0, 15))
	child.AddRow(rowWithAttr(0, 25))
	child.AddRow(rowWithAttr(0, 5))

	c := constraint.Band("c", "fk", "p", "id",
		constraint.Bound{Deviation: 0, Equality: core.EQ},
		constraint.Bound{Deviation: 0, Equality: core.EQ})

	rows := Encode(parent, child, c)
	require.Len(t, rows, child.Len()+2*parent.Len())

	var sources, starts, ends int
	for _, r := range rows {
		switch r.FieldType {
		case core.Source:
			sources++
		case core.Start:
			starts++
		case core.End:
			ends++
		}
	}
	assert.Equal(t, 3, sources)
	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, ends)
}

func TestEncodeShiftsParentBoundsByDeviation(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(rowWithAttr(0, 10))

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(rowWithAttr(0, 10))

	c := constraint.Band("c", "fk", "p", "id",
		constraint.Bound{Deviation: -2, Equality: core.EQ},
		constraint.Bound{Deviation: 3, Equality: core.NEQ})

	rows := Encode(parent, child, c)
	var start, end core.Entry
	for _, r := range rows {
		if r.FieldType == core.Start {
			start = r
		}
		if r.FieldType == core.End {
			end = r
		}
	}
	assert.Equal(t, int32(8), start.JoinAttr)
	assert.Equal(t, core.EQ, start.EqualityType)
	assert.Equal(t, int32(13), end.JoinAttr)
	assert.Equal(t, core.NEQ, end.EqualityType)
}

func TestEncodeClampsInfiniteDeviation(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(rowWithAttr(0, 10))
	child := core.NewTable("c", []string{"fk"})

	c := constraint.Band("c", "fk", "p", "id",
		constraint.Bound{Deviation: core.NegInf, Equality: core.EQ},
		constraint.Bound{Deviation: core.PosInf, Equality: core.EQ})

	rows := Encode(parent, child, c)
	for _, r := range rows {
		if r.FieldType == core.Start {
			assert.Equal(t, core.NegInf, r.JoinAttr)
		}
		if r.FieldType == core.End {
			assert.Equal(t, core.PosInf, r.JoinAttr)
		}
	}
}

func rowWithAttr(idx int, v int32) core.Entry {
	e := core.NewEntry(1)
	e.SetAttribute(idx, v)
	return e
}

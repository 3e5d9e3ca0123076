package phases

import (
	"testing"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRow(v int32) core.Entry {
	e := core.NewEntry(1)
	e.SetAttribute(0, v)
	return e
}

func TestBottomUpEquiJoinCountsMatches(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(idRow(1))
	parent.AddRow(idRow(2))
	parent.InitLeafMultiplicities()

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(idRow(1))
	child.AddRow(idRow(1))
	child.AddRow(idRow(2))
	child.InitLeafMultiplicities()

	edge := constraint.Equality("c", "fk", "p", "id")
	root := &jointree.Node{Alias: "p", Table: parent}
	kid := &jointree.Node{Alias: "c", Table: child, Parent: root, ParentEdge: jointree.Edge{Constraint: edge}}
	root.Children = []*jointree.Node{kid}

	err := BottomUp(root, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, int64(2), parent.Rows[0].LocalMult)
	assert.Equal(t, int64(1), parent.Rows[1].LocalMult)
}

func TestBottomUpBandJoinCountsMatches(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(idRow(10))
	parent.InitLeafMultiplicities()

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(idRow(9))
	child.AddRow(idRow(10))
	child.AddRow(idRow(11))
	child.AddRow(idRow(20))
	child.InitLeafMultiplicities()

	edge := constraint.Band("c", "fk", "p", "id",
		constraint.Bound{Deviation: -1, Equality: core.EQ},
		constraint.Bound{Deviation: 1, Equality: core.EQ})
	root := &jointree.Node{Alias: "p", Table: parent}
	kid := &jointree.Node{Alias: "c", Table: child, Parent: root, ParentEdge: jointree.Edge{Constraint: edge}}
	root.Children = []*jointree.Node{kid}

	err := BottomUp(root, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, int64(3), parent.Rows[0].LocalMult)
}

func TestBottomUpOpenBoundExcludesBoundaryValue(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(idRow(10))
	parent.InitLeafMultiplicities()

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(idRow(9))
	child.AddRow(idRow(11))
	child.InitLeafMultiplicities()

	edge := constraint.Band("c", "fk", "p", "id",
		constraint.Bound{Deviation: -1, Equality: core.NEQ},
		constraint.Bound{Deviation: 1, Equality: core.NEQ})
	root := &jointree.Node{Alias: "p", Table: parent}
	kid := &jointree.Node{Alias: "c", Table: child, Parent: root, ParentEdge: jointree.Edge{Constraint: edge}}
	root.Children = []*jointree.Node{kid}

	err := BottomUp(root, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, int64(0), parent.Rows[0].LocalMult)
}

func TestBottomUpMultiLevelAccumulatesProduct(t *testing.T) {
	grandparent := core.NewTable("g", []string{"id"})
	grandparent.AddRow(idRow(1))
	grandparent.InitLeafMultiplicities()

	parent := core.NewTable("p", []string{"id", "gfk"})
	p0 := idRow(0)
	p0.SetAttribute(1, 1)
	parent.AddRow(p0)
	p1 := idRow(0)
	p1.SetAttribute(1, 1)
	parent.AddRow(p1)
	parent.InitLeafMultiplicities()

	child := core.NewTable("c", []string{"pfk"})
	child.AddRow(idRow(0))
	child.AddRow(idRow(0))
	child.AddRow(idRow(0))
	child.InitLeafMultiplicities()

	root := &jointree.Node{Alias: "g", Table: grandparent}
	mid := &jointree.Node{
		Alias: "p", Table: parent, Parent: root,
		ParentEdge: jointree.Edge{Constraint: constraint.Equality("p", "gfk", "g", "id")},
	}
	leaf := &jointree.Node{
		Alias: "c", Table: child, Parent: mid,
		ParentEdge: jointree.Edge{Constraint: constraint.Equality("c", "pfk", "p", "id")},
	}
	mid.Children = []*jointree.Node{leaf}
	root.Children = []*jointree.Node{mid}

	err := BottomUp(root, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, int64(3), parent.Rows[0].LocalMult)
	assert.Equal(t, int64(3), parent.Rows[1].LocalMult)
	assert.Equal(t, int64(6), grandparent.Rows[0].LocalMult)
}

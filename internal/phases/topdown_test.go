package phases

import (
	"testing"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTwoLevelTree(t *testing.T) (*jointree.Node, *jointree.Node) {
	t.Helper()

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
	return root, kid
}

func TestTopDownMatchesLocalMultAtRoot(t *testing.T) {
	root, kid := buildTwoLevelTree(t)

	require.NoError(t, BottomUp(root, DefaultConfig()))
	require.NoError(t, TopDown(root, DefaultConfig()))

	assert.Equal(t, root.Table.Rows[0].LocalMult, root.Table.Rows[0].FinalMult)
	assert.Equal(t, root.Table.Rows[1].LocalMult, root.Table.Rows[1].FinalMult)

	// every child tuple joins with exactly one parent tuple here, so each
	// child row's final_mult should equal its own local_mult times its
	// parent's final_mult/local_mult ratio, which is 1 at an unjoined root.
	for _, row := range kid.Table.Rows {
		assert.Equal(t, row.LocalMult, row.FinalMult)
	}
}

func TestTopDownDistributesAcrossMultipleParentMatches(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(idRow(1))
	parent.AddRow(idRow(1))
	parent.InitLeafMultiplicities()

	child := core.NewTable("c", []string{"fk"})
	child.AddRow(idRow(1))
	child.InitLeafMultiplicities()

	edge := constraint.Equality("c", "fk", "p", "id")
	root := &jointree.Node{Alias: "p", Table: parent}
	kid := &jointree.Node{Alias: "c", Table: child, Parent: root, ParentEdge: jointree.Edge{Constraint: edge}}
	root.Children = []*jointree.Node{kid}

	require.NoError(t, BottomUp(root, DefaultConfig()))
	// both parent rows match the single child row: local_mult = 1 on each
	require.Equal(t, int64(1), parent.Rows[0].LocalMult)
	require.Equal(t, int64(1), parent.Rows[1].LocalMult)

	require.NoError(t, TopDown(root, DefaultConfig()))

	// the child row matches both parent rows, so its final_mult sums their
	// final_mult/local_mult ratios: 1 + 1 = 2.
	assert.Equal(t, int64(2), child.Rows[0].FinalMult)
}

func TestTopDownSplitsShareAcrossMultipleChildren(t *testing.T) {
	parent := core.NewTable("p", []string{"id"})
	parent.AddRow(idRow(1))
	parent.InitLeafMultiplicities()

	c1 := core.NewTable("c1", []string{"fk"})
	c1.AddRow(idRow(1))
	c1.AddRow(idRow(1))
	c1.InitLeafMultiplicities()

	c2 := core.NewTable("c2", []string{"fk"})
	c2.AddRow(idRow(1))
	c2.AddRow(idRow(1))
	c2.AddRow(idRow(1))
	c2.InitLeafMultiplicities()

	root := &jointree.Node{Alias: "p", Table: parent}
	kid1 := &jointree.Node{
		Alias: "c1", Table: c1, Parent: root,
		ParentEdge: jointree.Edge{Constraint: constraint.Equality("c1", "fk", "p", "id")},
	}
	kid2 := &jointree.Node{
		Alias: "c2", Table: c2, Parent: root,
		ParentEdge: jointree.Edge{Constraint: constraint.Equality("c2", "fk", "p", "id")},
	}
	root.Children = []*jointree.Node{kid1, kid2}

	require.NoError(t, BottomUp(root, DefaultConfig()))
	// local_mult multiplies both edges' window sizes: 2 matches in c1, 3 in
	// c2, giving the single parent row 6 combinations.
	require.Equal(t, int64(6), parent.Rows[0].LocalMult)

	require.NoError(t, TopDown(root, DefaultConfig()))

	// every c1 row pairs with all 3 c2 rows (final_mult = 6/2 = 3 each);
	// every c2 row pairs with all 2 c1 rows (final_mult = 6/3 = 2 each).
	// Splitting the parent's share evenly across both edges instead of per
	// edge would instead give every row final_mult = 6/6 = 1, undercounting
	// both sides.
	for _, row := range c1.Rows {
		assert.Equal(t, int64(3), row.FinalMult)
	}
	for _, row := range c2.Rows {
		assert.Equal(t, int64(2), row.FinalMult)
	}
}

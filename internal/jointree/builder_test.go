package jointree

import (
	"testing"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableMap(names ...string) map[string]*core.Table {
	m := make(map[string]*core.Table)
	for _, n := range names {
		m[n] = core.NewTable(n, []string{"id", "fk"})
	}
	return m
}

func TestBuildSimpleTwoTableTree(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b WHERE a.fk = b.id")
	require.NoError(t, err)

	root, nodes, err := Build(q, tableMap("a", "b"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.NotNil(t, root)
	if root.Alias == "a" {
		require.Len(t, root.Children, 1)
		assert.Equal(t, "b", root.Children[0].Alias)
	} else {
		require.Len(t, root.Children, 1)
		assert.Equal(t, "a", root.Children[0].Alias)
	}
}

func TestBuildStarTopologyPicksHighDegreeRoot(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b, c AS c WHERE a.fk = b.id AND a.fk = c.id")
	require.NoError(t, err)

	root, _, err := Build(q, tableMap("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, "a", root.Alias)
	assert.Len(t, root.Children, 2)
}

func TestBuildDetectsDisconnectedGraph(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b, c AS c WHERE a.fk = b.id")
	require.NoError(t, err)

	_, _, err = Build(q, tableMap("a", "b", "c"))
	require.Error(t, err)
	var target *CyclicOrDisconnected
	require.ErrorAs(t, err, &target)
}

func TestBuildDetectsCycle(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b, c AS c WHERE a.fk = b.id AND b.fk = c.id AND c.fk = a.id")
	require.NoError(t, err)

	_, _, err = Build(q, tableMap("a", "b", "c"))
	require.Error(t, err)
	var target *CyclicOrDisconnected
	require.ErrorAs(t, err, &target)
}

func TestBuildRejectsUnknownAlias(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b WHERE a.fk = b.id")
	require.NoError(t, err)

	_, _, err = Build(q, tableMap("a"))
	require.Error(t, err)
	var target *SchemaError
	require.ErrorAs(t, err, &target)
}

func TestBuildAssignsJoinColumns(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b WHERE a.fk = b.id")
	require.NoError(t, err)

	root, nodes, err := Build(q, tableMap("a", "b"))
	require.NoError(t, err)

	child := root.Children[0]
	assert.NotEmpty(t, child.JoinColumn)
	assert.NotEmpty(t, nodes[root.Alias].JoinColumn)
}

func TestPostOrderVisitsChildrenBeforeParent(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b, c AS c WHERE a.fk = b.id AND b.fk = c.id")
	require.NoError(t, err)

	root, _, err := Build(q, tableMap("a", "b", "c"))
	require.NoError(t, err)

	order := PostOrder(root)
	require.Len(t, order, 3)
	assert.Equal(t, root, order[len(order)-1])
}

func TestPreOrderVisitsParentBeforeChildren(t *testing.T) {
	q, err := query.Parse("SELECT * FROM a AS a, b AS b, c AS c WHERE a.fk = b.id AND b.fk = c.id")
	require.NoError(t, err)

	root, _, err := Build(q, tableMap("a", "b", "c"))
	require.NoError(t, err)

	order := PreOrder(root)
	require.Len(t, order, 3)
	assert.Equal(t, root, order[0])
}

package csp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gitrdm/reginsolve/pkg/csp"
)

type SCCSuite struct {
	suite.Suite
}

func (s *SCCSuite) TestSingleCycle() {
	// 0 -> 1 -> 2 -> 0: one SCC of size 3.
	graph := [][]int{{1}, {2}, {0}}
	comp := csp.Tarjan(graph)
	require.Equal(s.T(), comp[0], comp[1])
	require.Equal(s.T(), comp[1], comp[2])
}

func (s *SCCSuite) TestDAGHasSingletonComponents() {
	// 0 -> 1 -> 2, no back edges: every node its own SCC.
	graph := [][]int{{1}, {2}, {}}
	comp := csp.Tarjan(graph)
	require.NotEqual(s.T(), comp[0], comp[1])
	require.NotEqual(s.T(), comp[1], comp[2])
}

func (s *SCCSuite) TestTwoSeparateCycles() {
	// {0,1} form a cycle, {2,3} form a separate cycle, no edges between.
	graph := [][]int{{1}, {0}, {3}, {2}}
	comp := csp.Tarjan(graph)
	require.Equal(s.T(), comp[0], comp[1])
	require.Equal(s.T(), comp[2], comp[3])
	require.NotEqual(s.T(), comp[0], comp[2])
}

func (s *SCCSuite) TestComponentsGroupsByID() {
	graph := [][]int{{1}, {0}, {}}
	comp := csp.Tarjan(graph)
	groups := csp.Components(comp)

	found := false
	for _, g := range groups {
		if len(g) == 2 {
			require.ElementsMatch(s.T(), []int{0, 1}, g)
			found = true
		}
	}
	require.True(s.T(), found)
}

func TestSCCSuite(t *testing.T) {
	suite.Run(t, new(SCCSuite))
}

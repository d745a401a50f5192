package csp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gitrdm/reginsolve/pkg/csp"
)

type AC3Suite struct {
	suite.Suite
}

func (s *AC3Suite) TestPropagateRemovesUnsupportedValues() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("x", 1, 2, 3)
	y := p.AddVar("y", 3)
	require.NoError(s.T(), p.AddBinary(csp.NewLessThan[int](x, y)))

	ac3 := csp.NewAC3[string, int](p)
	domains, reduced := ac3.Propagate(ac3.ArcIter(), p.Domains())
	require.NotNil(s.T(), domains)
	require.True(s.T(), reduced)
	// Only x=1 and x=2 have support (< 3); x=3 is pruned.
	require.Equal(s.T(), []int{1, 2}, domains[x].Values())
	require.Equal(s.T(), []int{3}, domains[y].Values())
}

func (s *AC3Suite) TestPropagateDetectsInfeasibility() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("x", 5)
	y := p.AddVar("y", 5)
	require.NoError(s.T(), p.AddBinary(csp.NewDifferent[int](x, y)))

	ac3 := csp.NewAC3[string, int](p)
	domains, _ := ac3.Propagate(ac3.ArcIter(), p.Domains())
	require.Nil(s.T(), domains)
}

func (s *AC3Suite) TestPropagateDoesNotMutateInput() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("x", 1, 2, 3)
	y := p.AddVar("y", 3)
	require.NoError(s.T(), p.AddBinary(csp.NewLessThan[int](x, y)))

	original := p.Domains()
	ac3 := csp.NewAC3[string, int](p)
	_, _ = ac3.Propagate(ac3.ArcIter(), original)

	require.Equal(s.T(), 3, original[x].Size(), "Propagate must not mutate its input domains")
}

func (s *AC3Suite) TestPropagateFixpointWithNoReduction() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("x", 1, 2)
	y := p.AddVar("y", 1, 2)
	require.NoError(s.T(), p.AddBinary(csp.NewDifferent[int](x, y)))

	ac3 := csp.NewAC3[string, int](p)
	domains, reduced := ac3.Propagate(ac3.ArcIter(), p.Domains())
	require.NotNil(s.T(), domains)
	require.False(s.T(), reduced)
	require.Equal(s.T(), 2, domains[x].Size())
}

func TestAC3Suite(t *testing.T) {
	suite.Run(t, new(AC3Suite))
}

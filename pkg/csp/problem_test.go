package csp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gitrdm/reginsolve/pkg/csp"
)

type ProblemSuite struct {
	suite.Suite
}

func (s *ProblemSuite) TestAddVarAndResolve() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2, 3)
	resolved, err := p.Resolve("a")
	require.NoError(s.T(), err)
	require.Equal(s.T(), x, resolved)

	_, err = p.Resolve("missing")
	require.ErrorIs(s.T(), err, csp.ErrUnknownVariable)
}

func (s *ProblemSuite) TestAddBinaryRejectsUnknownVars() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2)
	err := p.AddBinary(csp.NewDifferent[int](x, csp.Var(99)))
	require.ErrorIs(s.T(), err, csp.ErrUnknownVariable)
}

func (s *ProblemSuite) TestAddBinaryRejectsSelfLoop() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2)
	err := p.AddBinary(csp.NewDifferent[int](x, x))
	require.ErrorIs(s.T(), err, csp.ErrDuplicateArc)
}

func (s *ProblemSuite) TestAddBinaryFoldsIntoSharedConstSet() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2, 3)
	y := p.AddVar("b", 1, 2, 3)
	require.NoError(s.T(), p.AddBinary(csp.NewDifferent[int](x, y)))
	require.NoError(s.T(), p.AddBinary(csp.NewLessThan[int](x, y)))

	cs, ok := p.Consts()[x][y]
	require.True(s.T(), ok)
	require.Len(s.T(), cs.Cs, 2)

	// The reverse direction shares the same relation object.
	reverse, ok := p.Consts()[y][x]
	require.True(s.T(), ok)
	require.Same(s.T(), cs, reverse)
}

func (s *ProblemSuite) TestAddUnaryFiltersDomain() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2, 3, 4)
	err := p.AddUnary(csp.UnaryConstraint[int]{X: x, Pred: func(v int) bool { return v%2 == 0 }})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{2, 4}, p.Domains()[x].Values())
}

func (s *ProblemSuite) TestAddAllDiffRejectsShortScope() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2)
	err := p.AddAllDiff(csp.NewAllDiff[int](x))
	require.ErrorIs(s.T(), err, csp.ErrEmptyScope)
}

func (s *ProblemSuite) TestAddAllDiffBinaryOnlyExpandsImmediately() {
	p := csp.NewProblem[string, int](csp.WithBinaryOnly(true))
	x := p.AddVar("a", 1, 2)
	y := p.AddVar("b", 1, 2)
	z := p.AddVar("c", 1, 2)
	require.NoError(s.T(), p.AddAllDiff(csp.NewAllDiff[int](x, y, z)))

	require.Empty(s.T(), p.Globals(), "BINARY_ONLY must not register a global")
	_, ok := p.Consts()[x][y]
	require.True(s.T(), ok, "BINARY_ONLY must expand into pairwise binaries")
}

func (s *ProblemSuite) TestNeighborsIncludesGlobalScope() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2)
	y := p.AddVar("b", 1, 2)
	z := p.AddVar("c", 1, 2)
	require.NoError(s.T(), p.AddAllDiff(csp.NewAllDiff[int](x, y, z)))

	neighbors := p.Neighbors(x)
	require.ElementsMatch(s.T(), []csp.Var{y, z}, neighbors)
}

func (s *ProblemSuite) TestConsistentChecksBinaryNeighbours() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1, 2)
	y := p.AddVar("b", 1, 2)
	require.NoError(s.T(), p.AddBinary(csp.NewDifferent[int](x, y)))

	a := csp.Assignment[int]{y: 1}
	require.False(s.T(), p.Consistent(x, 1, a))
	require.True(s.T(), p.Consistent(x, 2, a))
}

func (s *ProblemSuite) TestInitPreAssignsSingletons() {
	p := csp.NewProblem[string, int]()
	p.AddVar("a", 5)
	p.AddVar("b", 1, 2)

	ctx := p.Init()
	require.Equal(s.T(), 5, ctx.Assignment[0])
	require.False(s.T(), ctx.Unassigned[0])
	require.True(s.T(), ctx.Unassigned[1])
}

func (s *ProblemSuite) TestAsSolutionMapsBackToKeys() {
	p := csp.NewProblem[string, int]()
	x := p.AddVar("a", 1)
	a := csp.Assignment[int]{x: 1}
	require.Equal(s.T(), map[string]int{"a": 1}, p.AsSolution(a))
}

func TestProblemSuite(t *testing.T) {
	suite.Run(t, new(ProblemSuite))
}

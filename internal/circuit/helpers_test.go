package circuit

import (
	"context"
	"testing"

	"gatesim/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeTemplates map[string]domain.GateTemplate

func (f fakeTemplates) Get(_ context.Context, name string) (domain.GateTemplate, bool, error) {
	t, ok := f[name]
	return t, ok, nil
}

func testTemplates() fakeTemplates {
	return fakeTemplates{
		"AND": {Name: "AND", Version: "1.0.0", Inputs: 2, Outputs: 1},
		"NOT": {Name: "NOT", Version: "1.0.0", Inputs: 1, Outputs: 1},
		"OUT": {Name: "OUT", Version: "1.0.0", Inputs: 1, Outputs: 0},
	}
}

func newTestGraph(t *testing.T) (*Graph, fakeTemplates) {
	t.Helper()
	tmpls := testTemplates()
	return NewGraph(tmpls, DefaultOptions(), nil), tmpls
}

func mustAdd(t *testing.T, g *Graph, template string) *domain.Component {
	t.Helper()
	c, err := g.Add(context.Background(), template)
	require.NoError(t, err)
	return c
}

func ids(components []*domain.Component) []int {
	out := make([]int, 0, len(components))
	for _, c := range components {
		out = append(out, c.ID)
	}
	return out
}

package templates

import (
	"context"

	"gatesim/internal/domain"

	"go.uber.org/zap"
)

func builtin(name string, inputs int, activation, color string) domain.GateTemplate {
	return domain.GateTemplate{
		Name:       name,
		Version:    domain.DefaultTemplateVersion,
		Inputs:     inputs,
		Outputs:    1,
		Activation: activation,
		Editable:   false,
		Material:   domain.Material{Mode: domain.MaterialColor, Data: color},
	}
}

// Builtins returns the standard logic gates
func Builtins() []domain.GateTemplate {
	return []domain.GateTemplate{
		builtin("and", 2, "return [inputs[0] && inputs[1]]", "#3f51b5"),
		builtin("or", 2, "return [inputs[0] || inputs[1]]", "#009688"),
		builtin("not", 1, "return [!inputs[0]]", "#e91e63"),
		builtin("nand", 2, "return [!(inputs[0] && inputs[1])]", "#673ab7"),
		builtin("nor", 2, "return [!(inputs[0] || inputs[1])]", "#795548"),
		builtin("xor", 2, "return [inputs[0] !== inputs[1]]", "#ff9800"),
		builtin("xnor", 2, "return [inputs[0] === inputs[1]]", "#607d8b"),
		builtin("buffer", 1, "return [inputs[0]]", "#4caf50"),
	}
}

// SeedBuiltins stores the built-in gates when the template namespace is
// empty. It returns the number of templates written.
func (s *Store) SeedBuiltins(ctx context.Context) (int, error) {
	names, err := s.kv.Ls(ctx)
	if err != nil {
		return 0, err
	}
	if len(names) > 0 {
		return 0, nil
	}

	n, err := s.Import(ctx, Builtins())
	s.logger.Info("seeded built-in gates", zap.Int("count", n))
	return n, err
}

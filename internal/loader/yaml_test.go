package loader

import (
	"os"
	"path/filepath"
	"testing"

	"gatesim/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const library = `
version: "1"
description: adders
gates:
  half_adder:
    inputs: 2
    outputs: 2
    activation: "return [a !== b, a && b]"
    color: "#ff0"
  lamp:
    outputs: 0
    image: lamp.svg
    editable: false
  probe:
`

func TestParseYAML(t *testing.T) {
	tmpls, err := ParseYAML([]byte(library))
	require.NoError(t, err)
	require.Len(t, tmpls, 3)

	half := tmpls[0]
	assert.Equal(t, "half_adder", half.Name)
	assert.Equal(t, 2, half.Inputs)
	assert.Equal(t, 2, half.Outputs)
	assert.Equal(t, domain.Material{Mode: domain.MaterialColor, Data: "#ff0"}, half.Material)
	assert.True(t, half.Editable)
	assert.Equal(t, domain.DefaultTemplateVersion, half.Version)

	lamp := tmpls[1]
	assert.Equal(t, 1, lamp.Inputs)
	assert.Equal(t, 0, lamp.Outputs)
	assert.Equal(t, domain.MaterialStandardImage, lamp.Material.Mode)
	assert.False(t, lamp.Editable)

	assert.Equal(t, domain.NewGateTemplate("probe"), tmpls[2])
}

func TestParseYAMLSkipsInvalidGates(t *testing.T) {
	input := `
gates:
  ok: {inputs: 1}
  negative: {inputs: -2}
  both: {color: red, image: x.png}
`
	tmpls, err := ParseYAML([]byte(input))
	assert.Error(t, err)
	require.Len(t, tmpls, 1)
	assert.Equal(t, "ok", tmpls[0].Name)
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseYAML([]byte("gates: [unclosed"))
	assert.Error(t, err)
}

func TestExportAndLoad(t *testing.T) {
	tmpls, err := ParseYAML([]byte(library))
	require.NoError(t, err)

	data, err := ExportYAML(tmpls)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gates.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, tmpls, loaded)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	portalModel = "../compiler/testdata/portal.yaml"
	slabModel   = "../compiler/testdata/slab.cue"
	trussModel  = "../compiler/testdata/truss.json"
)

// runCLI executes the root command with args and returns stdout, stderr
// and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// readGolden returns a deck fixture from the deck package.
func readGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "deck", "testdata", "golden", name+".golden"))
	require.NoError(t, err)
	return string(data)
}

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// beamWithThreeNodes is a model whose only beam element no target can
// lower.
const beamWithThreeNodes = `
name: bent
nodes: [[0, 0, 0], [1, 0, 0], [2, 0, 0]]
materials:
  - {name: steel, E: 2.1e+11, v: 0.3}
sections:
  - name: rect
    kind: Rectangular
    geometry: {b: 0.2, h: 0.4}
elements:
  - nodes: [0, 1, 2]
properties:
  - {name: beam, material: steel, section: rect, elements: [0]}
`

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fedeck/internal/store"
)

// generateJSON runs generate in JSON mode and decodes the report.
func generateJSON(t *testing.T, args ...string) GenerateResult {
	t.Helper()
	stdout, _, err := runCLI(t, append([]string{"generate", "--format", "json"}, args...)...)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestGenerate_DeckToStdout(t *testing.T) {
	stdout, stderr, err := runCLI(t, "generate", portalModel, "--target", "abaqus")
	require.NoError(t, err)

	assert.Equal(t, readGolden(t, "beam_abaqus"), stdout)
	assert.Contains(t, stderr, "✓ Generated abaqus deck for portal: 1 element(s), 13 line(s)")
	assert.Contains(t, stderr, "deck generated")
}

func TestGenerate_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "slab.dat")

	stdout, _, err := runCLI(t, "generate", slabModel, "-t", "Sofistik", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, readGolden(t, "shell_sofistik"), string(data))
	assert.Contains(t, stdout, "✓ Generated sofistik deck for slab: 2 element(s)")
	assert.Contains(t, stdout, "1 element(s) skipped")
	assert.Contains(t, stdout, "element 1 (shell, 3 nodes) in deck")
	assert.Contains(t, stdout, "Wrote deck to "+out)
}

func TestGenerate_JSON(t *testing.T) {
	result := generateJSON(t, trussModel, "--target", "opensees")

	assert.Equal(t, "truss", result.Model)
	assert.Equal(t, "opensees", result.Target)
	assert.Equal(t, 2, result.Elements)
	assert.Empty(t, result.Skipped)
	assert.Len(t, result.ModelHash, 64)
	assert.Equal(t, readGolden(t, "truss_opensees"), result.Deck)
}

func TestGenerate_Archive(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decks.db")

	first := generateJSON(t, portalModel, "--target", "abaqus", "--db", db)
	require.NotEmpty(t, first.ArchiveID)
	assert.True(t, first.Archived)

	second := generateJSON(t, portalModel, "--target", "abaqus", "--db", db)
	assert.Equal(t, first.ArchiveID, second.ArchiveID)
	assert.False(t, second.Archived, "identical deck is not archived twice")

	_, stderr, err := runCLI(t, "generate", portalModel, "--target", "abaqus", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Deck already archived as "+first.ArchiveID)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	rec, err := st.ReadDeck(context.Background(), first.ArchiveID)
	require.NoError(t, err)
	assert.Equal(t, first.ModelHash, rec.ModelHash)
	assert.Equal(t, readGolden(t, "beam_abaqus"), string(rec.Content))
}

func TestGenerate_UnknownTarget(t *testing.T) {
	stdout, _, err := runCLI(t, "generate", portalModel, "--target", "nastran")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeUnknownTarget)
	assert.Contains(t, stdout, "[abaqus ansys opensees sofistik]")
}

func TestGenerate_ModelErrors(t *testing.T) {
	dir := t.TempDir()
	badMaterial := writeFile(t, dir, "bad.yaml", `
name: bad
nodes: [[0, 0, 0]]
materials:
  - {name: steel, E: -1, v: 0.3}
sections: []
elements: []
properties: []
`)
	unsupported := writeFile(t, dir, "model.toml", "name = 'x'\n")

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"missing", filepath.Join(dir, "absent.cue"), ErrCodeNotFound},
		{"schema violation", badMaterial, ErrCodeMaterial},
		{"unsupported extension", unsupported, ErrCodeFileFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "generate", tt.path, "--target", "abaqus")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestGenerate_ValidationWarningsAndStrict(t *testing.T) {
	model := writeFile(t, t.TempDir(), "bent.yaml", beamWithThreeNodes)

	stdout, stderr, err := runCLI(t, "generate", model, "--target", "abaqus")
	require.NoError(t, err)
	assert.Contains(t, stderr, "model validation")
	assert.Contains(t, stderr, "code=E126")
	assert.Contains(t, stderr, "1 element(s) skipped")
	assert.NotContains(t, stdout, "*ELEMENT")

	stdout, _, err = runCLI(t, "generate", model, "--target", "abaqus", "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ Validation failed")
	assert.Contains(t, stdout, "E126")
}

func TestGenerate_LookupFailure(t *testing.T) {
	model := writeFile(t, t.TempDir(), "nothick.yaml", `
name: nothick
nodes: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
materials:
  - {name: concrete, E: 3.0e+10, v: 0.2}
sections:
  - {name: plate, kind: Shell}
elements:
  - nodes: [0, 1, 2, 3]
properties:
  - {name: slab, material: concrete, section: plate, elements: [0]}
`)

	stdout, _, err := runCLI(t, "generate", model, "--target", "abaqus", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeGenerateFailed, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "slab", details["property"])
	assert.Equal(t, "t", details["name"])
}

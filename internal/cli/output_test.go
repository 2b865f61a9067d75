package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"cuelang.org/go/cue/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("E009", "unknown target", map[string]string{"target": "nastran"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E009", resp.Error.Code)
	assert.Equal(t, "unknown target", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error("E010", "generation failed", "property deck"))
			assert.Contains(t, buf.String(), "Error [E010]: generation failed")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: property deck")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "disk full", nil)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E007: disk full", err.Error())
	assert.Contains(t, buf.String(), "Error [E007]: disk full")
}

func TestOutputFormatter_FailLoad(t *testing.T) {
	pos := token.NewFile("model.cue", -1, 100).Pos(10, token.NoRelPos)

	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}
	err := formatter.FailLoad(&LoadError{Code: ErrCodeMaterial, Message: "E must be positive", Pos: pos})
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "model.cue:")
	assert.Contains(t, buf.String(), "Error [E101]: E must be positive")

	buf.Reset()
	formatter.Format = "json"
	_ = formatter.FailLoad(&LoadError{Code: ErrCodeMaterial, Message: "E must be positive", Pos: pos})
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "model.cue", details["file"])

	buf.Reset()
	formatter.Format = "text"
	err = formatter.FailLoad(errors.New("boom"))
	assert.Contains(t, err.Error(), ErrCodeGeneric)
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}

	formatter.VerboseLog("Loaded %s", "slab.cue")
	assert.Empty(t, out.String(), "diagnostics must not corrupt JSON output")
	assert.Equal(t, "Loaded slab.cue\n", diag.String())

	formatter.Verbose = false
	formatter.VerboseLog("ignored")
	assert.Equal(t, "Loaded slab.cue\n", diag.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "wrapped", errors.New("inner"))))

	wrapped := WrapExitError(ExitCommandError, "open", errors.New("permission denied"))
	assert.Equal(t, "open: permission denied", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "permission denied")
}

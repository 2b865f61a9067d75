package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "fedeck", cmd.Use)
	assert.Contains(t, cmd.Long, "Sofistik")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, cmdName := range []string{"generate", "validate", "formats", "history", "show", "test"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	for name, short := range map[string]string{"target": "t", "output": "o", "db": "", "strict": ""} {
		flag := genCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand, name)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := runCLI(t, "formats", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestExecute_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"success", []string{"formats"}, ExitSuccess},
		{"validation failure", []string{"validate", "testdata/invalid.yaml"}, ExitFailure},
		{"missing model", []string{"validate", "testdata/absent.yaml"}, ExitCommandError},
		{"unknown command", []string{"compile"}, ExitCommandError},
		{"missing required flag", []string{"generate", portalModel}, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, Execute(tt.args, &stdout, &stderr))
		})
	}
}

func TestExecute_ReportsCobraErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	Execute([]string{"generate", portalModel}, &stdout, &stderr)
	assert.Contains(t, stderr.String(), `required flag(s) "target" not set`)
}

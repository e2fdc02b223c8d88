package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gedcheck", cmd.Use)
	assert.Contains(t, cmd.Long, "genealogy")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"parse", "check", "relations", "list", "export", "runs", "replay", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
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

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flag    string
		def     string
	}{
		{"parse", "records", "false"},
		{"check", "fail-on-findings", "false"},
		{"check", "disable", "[]"},
		{"check", "metrics", ""},
		{"relations", "founders", "[]"},
		{"export", "db", ""},
		{"runs", "db", ""},
		{"runs", "id", ""},
		{"runs", "fingerprint", ""},
		{"replay", "db", ""},
		{"test", "update", "false"},
		{"test", "filter", ""},
	}

	root := NewRootCommand()
	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			sub, _, err := root.Find([]string{tt.command})
			require.NoError(t, err)
			f := sub.Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, NewRootCommand(), "--format", "xml", "parse", cleanGED)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	cfgPath := writeFile(t, "gedcheck.yaml", "log_level: loud\n")

	_, err := execute(t, NewRootCommand(), "--config", cfgPath, "parse", cleanGED)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeConfigInvalid)
}

func TestRootCommand_ConfigReachesCommands(t *testing.T) {
	cfgPath := writeFile(t, "gedcheck.yaml", `
reference_date: 1 JUN 2020
rules:
  disabled: [US01, US42]
`)

	out, err := execute(t, NewRootCommand(), "--config", cfgPath, "check", troubledGED)
	require.NoError(t, err)
	assert.Contains(t, out, "[US02]")
	assert.Contains(t, out, "[US16]")
	assert.NotContains(t, out, "[US01]")
	assert.NotContains(t, out, "[US42]")
	assert.Contains(t, out, "as of 1 JUN 2020")
}

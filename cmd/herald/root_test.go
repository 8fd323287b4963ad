package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Properties(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "herald", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Short, "Discord")
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expectedCommands := []string{
		"start",
		"validate",
		"version",
	}

	subcommandNames := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		subcommandNames[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		assert.True(t, subcommandNames[expected], "missing subcommand: %s", expected)
	}
}

func TestStartCommand_HasConfigFlag(t *testing.T) {
	flag := startCmd.Flags().Lookup("config")
	assert.NotNil(t, flag, "start command should have config flag")
	assert.Equal(t, "config.yaml", flag.DefValue)
}

func TestVersionCommand_HasJSONFlag(t *testing.T) {
	flag := versionCmd.Flags().Lookup("json")
	assert.NotNil(t, flag, "version command should have json flag")
}

func TestAllCommandsHaveShortDescription(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		assert.NotEmpty(t, cmd.Short, "command %s should have short description", cmd.Name())
	}
}

func TestVersionOutput_DefaultBuildInfo(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", BuildTime)
	assert.Equal(t, "unknown", GitBranch)
	assert.Equal(t, "unknown", GitCommit)
}

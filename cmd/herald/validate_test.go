package main

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldkit/herald/internal/config"
)

func TestValidateCommandFlags(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "validate" {
			flag := cmd.Flags().Lookup("config")
			assert.NotNil(t, flag, "validate command should have config flag")

			flag = cmd.Flags().Lookup("show")
			assert.NotNil(t, flag, "validate command should have show flag")

			flag = cmd.Flags().Lookup("json")
			assert.NotNil(t, flag, "validate command should have json flag")
			return
		}
	}
	t.Fatal("validate command not found")
}

func TestValidateConfigDetails_OpenConfig(t *testing.T) {
	cfg := &config.Config{}

	warnings := validateConfigDetails(cfg)

	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "Whitelist is disabled")
	assert.Contains(t, warnings[1], "No admins configured")
	assert.Contains(t, warnings[2], "No guild_id set")
}

func TestValidateConfigDetails_LockedDownConfig(t *testing.T) {
	cfg := &config.Config{
		Discord: config.DiscordConfig{GuildID: "guild-1"},
		Security: config.SecurityConfig{
			WhitelistEnabled: true,
			AllowedUsers:     []string{"user-1"},
			Admins:           []string{"admin-1"},
		},
	}

	warnings := validateConfigDetails(cfg)

	assert.Empty(t, warnings)
}

func TestOutputValidationResult_JSON(t *testing.T) {
	result := ValidationResult{
		Valid:         true,
		Config:        "config.yaml",
		Announcements: 2,
		Admins:        1,
		Warnings:      []string{"something soft"},
	}

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outputValidationResult(result, true)

	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	var decoded ValidationResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.Valid)
	assert.Equal(t, "config.yaml", decoded.Config)
	assert.Equal(t, 2, decoded.Announcements)
	assert.Equal(t, []string{"something soft"}, decoded.Warnings)
	assert.Empty(t, decoded.Errors)
}

func TestValidationResult_OmitsEmptyErrorLists(t *testing.T) {
	out, err := json.Marshal(ValidationResult{Valid: true, Config: "c.yaml"})
	require.NoError(t, err)

	assert.NotContains(t, string(out), "errors")
	assert.NotContains(t, string(out), "warnings")
}

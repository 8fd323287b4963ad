package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "herald-config-*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func TestLoad_ValidConfig_ReturnsConfigStruct(t *testing.T) {
	configContent := `
discord:
  token: "${TEST_HERALD_TOKEN}"
  app_id: "100200300400500600"
  guild_id: "200300400500600700"
  command_prefix: "!"

security:
  whitelist_enabled: true
  allowed_users:
    - "123456789012345678"
  admins:
    - "123456789012345678"

feedback:
  retry: true

announcements:
  - name: "daily-standup"
    schedule: "0 9 * * 1-5"
    channel_id: "300400500600700800"
    message: "Standup in ten minutes."
    severity: "info"

logging:
  level: "info"
  enable_stdout: true
`
	path := writeTempConfig(t, configContent)

	os.Setenv("TEST_HERALD_TOKEN", "test-token-12345")
	defer os.Unsetenv("TEST_HERALD_TOKEN")

	config, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "test-token-12345", config.Discord.Token)
	assert.Equal(t, "100200300400500600", config.Discord.AppID)
	assert.True(t, config.Security.WhitelistEnabled)
	assert.True(t, config.Feedback.Retry)
	assert.Len(t, config.Announcements, 1)
	assert.Equal(t, "daily-standup", config.Announcements[0].Name)
}

func TestLoad_MissingEnvironmentVariable_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "${HERALD_UNSET_TOKEN_VAR}"
  app_id: "100200300400500600"
`
	path := writeTempConfig(t, configContent)

	os.Unsetenv("HERALD_UNSET_TOKEN_VAR")

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HERALD_UNSET_TOKEN_VAR")
}

func TestLoad_MissingToken_ReturnsError(t *testing.T) {
	configContent := `
discord:
  app_id: "100200300400500600"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discord.token")
}

func TestLoad_MissingAppID_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discord.app_id")
}

func TestLoad_Defaults_AreApplied(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

announcements:
  - name: "weekly-report"
    schedule: "0 17 * * 5"
    channel_id: "300400500600700800"
    message: "Weekly report is due."
`
	path := writeTempConfig(t, configContent)

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultCommandPrefix, config.Discord.CommandPrefix)
	assert.Equal(t, DefaultLogLevel, config.Logging.Level)
	assert.Equal(t, DefaultLogMaxSize, config.Logging.MaxSize)
	assert.Equal(t, DefaultLogMaxBackups, config.Logging.MaxBackups)
	assert.Equal(t, DefaultLogMaxAge, config.Logging.MaxAge)
	assert.Equal(t, DefaultAnnouncementSeverity, config.Announcements[0].Severity)
}

func TestLoad_WhitespacePrefix_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"
  command_prefix: "! "
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "command_prefix")
}

func TestLoad_WhitelistEnabledWithoutUsers_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

security:
  whitelist_enabled: true
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "allowed_users")
}

func TestLoad_InvalidAnnouncementSchedule_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

announcements:
  - name: "broken"
    schedule: "99 99 * * *"
    channel_id: "300400500600700800"
    message: "never"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestLoad_UnknownAnnouncementSeverity_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

announcements:
  - name: "loud"
    schedule: "0 9 * * *"
    channel_id: "300400500600700800"
    message: "hello"
    severity: "critical"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "severity")
}

func TestLoad_DuplicateAnnouncementNames_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

announcements:
  - name: "ping"
    schedule: "0 9 * * *"
    channel_id: "300400500600700800"
    message: "one"
  - name: "ping"
    schedule: "0 10 * * *"
    channel_id: "300400500600700800"
    message: "two"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate announcement")
}

func TestLoad_AnnouncementMissingChannel_ReturnsError(t *testing.T) {
	configContent := `
discord:
  token: "some-token"
  app_id: "100200300400500600"

announcements:
  - name: "orphan"
    schedule: "0 9 * * *"
    message: "no channel"
`
	path := writeTempConfig(t, configContent)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel_id")
}

func TestLoad_NonexistentFile_ReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/herald.yaml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	path := writeTempConfig(t, "discord: [unclosed")

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestIsUserAuthorized_WhitelistDisabled_AllowsEveryone(t *testing.T) {
	config := &Config{}

	assert.True(t, config.IsUserAuthorized("anyone"))
}

func TestIsUserAuthorized_WhitelistEnabled_ChecksMembership(t *testing.T) {
	config := &Config{
		Security: SecurityConfig{
			WhitelistEnabled: true,
			AllowedUsers:     []string{"111", "222"},
		},
	}

	assert.True(t, config.IsUserAuthorized("111"))
	assert.True(t, config.IsUserAuthorized("222"))
	assert.False(t, config.IsUserAuthorized("333"))
}

func TestIsAdmin_ChecksMembership(t *testing.T) {
	config := &Config{
		Security: SecurityConfig{
			Admins: []string{"111"},
		},
	}

	assert.True(t, config.IsAdmin("111"))
	assert.False(t, config.IsAdmin("222"))
}

func TestIsAdmin_EmptyList_DeniesEveryone(t *testing.T) {
	config := &Config{}

	assert.False(t, config.IsAdmin("111"))
}

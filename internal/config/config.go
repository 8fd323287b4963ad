// Package config loads and validates the herald configuration file.
//
// Configuration is YAML with ${VAR} environment substitution. Referencing an
// unset variable is a load error rather than a silent empty value, so missing
// tokens surface at startup instead of at the first failed API call.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCommandPrefix = "!"
	DefaultLogLevel      = "info"
	DefaultLogMaxSize    = 100 // MB
	DefaultLogMaxBackups = 5
	DefaultLogMaxAge     = 30 // days

	DefaultAnnouncementSeverity = "info"
)

// Load reads the configuration file, expands environment variables and
// validates the result
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig fills in defaults and rejects configurations that cannot work
func validateConfig(config *Config) error {
	if config.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	if config.Discord.AppID == "" {
		return fmt.Errorf("discord.app_id is required for slash command registration")
	}
	if config.Discord.CommandPrefix == "" {
		config.Discord.CommandPrefix = DefaultCommandPrefix
	}
	if strings.ContainsAny(config.Discord.CommandPrefix, " \t\n") {
		return fmt.Errorf("discord.command_prefix must not contain whitespace")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = DefaultLogMaxAge
	}

	if config.Security.WhitelistEnabled {
		if len(config.Security.AllowedUsers) == 0 {
			return fmt.Errorf("security.allowed_users cannot be empty when whitelist is enabled")
		}
	}

	seen := make(map[string]bool, len(config.Announcements))
	for i := range config.Announcements {
		a := &config.Announcements[i]
		if a.Name == "" {
			return fmt.Errorf("announcements[%d].name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate announcement name '%s'", a.Name)
		}
		seen[a.Name] = true

		if a.ChannelID == "" {
			return fmt.Errorf("announcement '%s' is missing channel_id", a.Name)
		}
		if a.Message == "" {
			return fmt.Errorf("announcement '%s' is missing message", a.Name)
		}
		if _, err := cron.ParseStandard(a.Schedule); err != nil {
			return fmt.Errorf("announcement '%s' has an invalid schedule: %w", a.Name, err)
		}

		if a.Severity == "" {
			a.Severity = DefaultAnnouncementSeverity
		}
		switch a.Severity {
		case "info", "success", "warning", "error":
		default:
			return fmt.Errorf("announcement '%s' has unknown severity '%s'", a.Name, a.Severity)
		}
	}

	return nil
}

// IsUserAuthorized checks if a user may run commands
func (c *Config) IsUserAuthorized(userID string) bool {
	// If whitelist is disabled, allow all users (not recommended for production)
	if !c.Security.WhitelistEnabled {
		return true
	}

	for _, uid := range c.Security.AllowedUsers {
		if uid == userID {
			return true
		}
	}

	return false
}

// IsAdmin checks if a user may run administrative commands
func (c *Config) IsAdmin(userID string) bool {
	for _, adminID := range c.Security.Admins {
		if adminID == userID {
			return true
		}
	}

	return false
}

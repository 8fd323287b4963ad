package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heraldkit/herald/internal/config"
)

var (
	validateConfig string
	validateShow   bool
	validateJSON   bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	Config        string   `json:"config"`
	Announcements int      `json:"announcements"`
	AllowedUsers  int      `json:"allowed_users"`
	Admins        int      `json:"admins"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate herald configuration file",
	Long: `Validate the herald configuration file without starting the bot.

This command checks:
  - YAML syntax
  - Required Discord credentials
  - Announcement schedules
  - Security whitelist settings

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		// Get config file path
		configPath := validateConfig
		if configPath == "" {
			// Try default locations
			for _, loc := range []string{
				"config.yaml",
				filepath.Join(os.Getenv("HOME"), ".config/herald/config.yaml"),
				"/etc/herald/config.yaml",
			} {
				if _, err := os.Stat(loc); err == nil {
					configPath = loc
					break
				}
			}
		}

		if configPath == "" {
			fmt.Println("❌ No configuration file found")
			fmt.Println("\nSpecify a config file with --config or ensure one exists at:")
			fmt.Println("  - ./config.yaml")
			fmt.Println("  - ~/.config/herald/config.yaml")
			fmt.Println("  - /etc/herald/config.yaml")
			os.Exit(1)
		}

		// Load configuration
		cfg, err := config.Load(configPath)
		if err != nil {
			result := ValidationResult{
				Valid:  false,
				Config: configPath,
				Errors: []string{err.Error()},
			}
			outputValidationResult(result, validateJSON)
			os.Exit(1)
		}

		result := ValidationResult{
			Valid:         true,
			Config:        configPath,
			Announcements: len(cfg.Announcements),
			AllowedUsers:  len(cfg.Security.AllowedUsers),
			Admins:        len(cfg.Security.Admins),
			Warnings:      validateConfigDetails(cfg),
		}

		// Show full config if requested
		if validateShow {
			fmt.Printf("✓ Configuration loaded: %s\n\n", configPath)
			fmt.Printf("Discord:\n")
			fmt.Printf("  - Token: %s\n", config.MaskSecret(cfg.Discord.Token))
			fmt.Printf("  - App ID: %s\n", cfg.Discord.AppID)
			fmt.Printf("  - Guild ID: %s\n", cfg.Discord.GuildID)
			fmt.Printf("  - Command prefix: %s\n", cfg.Discord.CommandPrefix)
			fmt.Printf("\nAnnouncements (%d):\n", len(cfg.Announcements))
			for _, a := range cfg.Announcements {
				fmt.Printf("  - %s: %q @ %s -> %s (%s)\n",
					a.Name, a.Schedule, a.ChannelID, a.Message, a.Severity)
			}
			fmt.Printf("\nSecurity:\n")
			fmt.Printf("  - Whitelist enabled: %v\n", cfg.Security.WhitelistEnabled)
			fmt.Printf("  - Allowed users: %d\n", len(cfg.Security.AllowedUsers))
			fmt.Printf("  - Admins: %d\n", len(cfg.Security.Admins))
			fmt.Println()
		}

		outputValidationResult(result, validateJSON)
	},
}

func outputValidationResult(result ValidationResult, jsonFormat bool) {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			fmt.Printf("{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Println(string(output))
		return
	}

	if result.Valid {
		fmt.Println("✓ Configuration is valid")
		fmt.Printf("  - Config: %s\n", result.Config)
		fmt.Printf("  - Announcements: %d\n", result.Announcements)
		fmt.Printf("  - Allowed users: %d\n", result.AllowedUsers)
		fmt.Printf("  - Admins: %d\n", result.Admins)
		if len(result.Warnings) > 0 {
			fmt.Println("\n⚠️  Warnings:")
			for _, warning := range result.Warnings {
				fmt.Printf("  - %s\n", warning)
			}
		}
	} else {
		fmt.Println("❌ Configuration validation failed:")
		if len(result.Errors) > 0 {
			fmt.Println("\nErrors:")
			for _, errMsg := range result.Errors {
				fmt.Printf("  - %s\n", errMsg)
			}
		}
	}
}

// validateConfigDetails collects non-fatal findings a loaded config can have.
func validateConfigDetails(cfg *config.Config) []string {
	var warnings []string

	if !cfg.Security.WhitelistEnabled {
		warnings = append(warnings, "Whitelist is disabled - every Discord user can invoke commands")
	}

	if len(cfg.Security.Admins) == 0 {
		warnings = append(warnings, "No admins configured - admin commands will be unusable")
	}

	if cfg.Discord.GuildID == "" {
		warnings = append(warnings, "No guild_id set - slash commands register globally and can take up to an hour to appear")
	}

	return warnings
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "", "Configuration file path")
	validateCmd.Flags().BoolVar(&validateShow, "show", false, "Show full configuration details")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}

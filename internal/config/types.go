package config

// Config is the root configuration structure
type Config struct {
	Discord       DiscordConfig        `yaml:"discord"`
	Security      SecurityConfig       `yaml:"security"`
	Feedback      FeedbackConfig       `yaml:"feedback"`
	Announcements []AnnouncementConfig `yaml:"announcements"`
	Logging       LoggingConfig        `yaml:"logging"`
}

// DiscordConfig holds the Discord connection settings
type DiscordConfig struct {
	// Token is the bot token, usually supplied as ${DISCORD_BOT_TOKEN}
	Token string `yaml:"token"`
	// AppID is the application ID slash commands are registered under
	AppID string `yaml:"app_id"`
	// GuildID scopes slash command registration to one guild; empty means global
	GuildID string `yaml:"guild_id"`
	// CommandPrefix introduces text commands in channels, default "!"
	CommandPrefix string `yaml:"command_prefix"`
}

// SecurityConfig holds access control settings
type SecurityConfig struct {
	// WhitelistEnabled restricts command use to AllowedUsers
	WhitelistEnabled bool `yaml:"whitelist_enabled"`
	// AllowedUsers lists user IDs permitted to run commands
	AllowedUsers []string `yaml:"allowed_users"`
	// Admins lists user IDs permitted to run administrative commands
	Admins []string `yaml:"admins"`
}

// FeedbackConfig tunes message delivery
type FeedbackConfig struct {
	// Retry wraps the transport with exponential backoff on transient failures
	Retry bool `yaml:"retry"`
}

// AnnouncementConfig describes one scheduled announcement
type AnnouncementConfig struct {
	Name string `yaml:"name"`
	// Schedule is a standard 5-field cron expression
	Schedule  string `yaml:"schedule"`
	ChannelID string `yaml:"channel_id"`
	Message   string `yaml:"message"`
	// Severity picks the embed colour: info, success, warning or error
	Severity string `yaml:"severity"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level        string `yaml:"level"`
	File         string `yaml:"file"`
	MaxSize      int    `yaml:"max_size"`
	MaxBackups   int    `yaml:"max_backups"`
	MaxAge       int    `yaml:"max_age"`
	Compress     bool   `yaml:"compress"`
	EnableStdout bool   `yaml:"enable_stdout"`
}

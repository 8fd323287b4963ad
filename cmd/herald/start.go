package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heraldkit/herald/internal/announce"
	"github.com/heraldkit/herald/internal/commands"
	"github.com/heraldkit/herald/internal/config"
	"github.com/heraldkit/herald/internal/dispatch"
	"github.com/heraldkit/herald/internal/logger"
	"github.com/heraldkit/herald/pkg/feedback"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the herald bot process",
		Long:  "Start the herald bot process, serve commands and post scheduled announcements",
		Run: func(cmd *cobra.Command, args []string) {
			// Load configuration
			cfg, err := config.Load(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			fmt.Printf("Starting herald with config: %s\n", configFile)
			fmt.Printf("Command prefix: %s\n", cfg.Discord.CommandPrefix)
			fmt.Printf("Whitelist enabled: %v\n", cfg.Security.WhitelistEnabled)
			fmt.Printf("Announcements configured: %d\n", len(cfg.Announcements))

			// Initialize logger
			logConfig := logger.Config{
				Level:        cfg.Logging.Level,
				File:         cfg.Logging.File,
				MaxSize:      cfg.Logging.MaxSize,
				MaxBackups:   cfg.Logging.MaxBackups,
				MaxAge:       cfg.Logging.MaxAge,
				Compress:     cfg.Logging.Compress,
				EnableStdout: cfg.Logging.EnableStdout,
			}
			if err := logger.Init(logConfig); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   cfg.Logging.Level,
				"log_file":    cfg.Logging.File,
				"token":       config.MaskSecret(cfg.Discord.Token),
			}).Info("logger-initialized")

			// Create Discord session
			session, err := discordgo.New("Bot " + cfg.Discord.Token)
			if err != nil {
				log.Fatalf("Failed to create Discord session: %v", err)
			}
			session.Identify.Intents = discordgo.IntentsGuilds |
				discordgo.IntentsGuildMessages |
				discordgo.IntentsDirectMessages |
				discordgo.IntentMessageContent

			// Wrap the session with retries when configured
			var sender feedback.Sender = session
			if cfg.Feedback.Retry {
				sender = feedback.NewRetrySender(session)
				log.Printf("Feedback retries enabled")
			}
			svc := feedback.NewService(sender)

			dispatcher := dispatch.New(session, svc, cfg)

			announcer, err := announce.New(svc, cfg.Announcements)
			if err != nil {
				log.Fatalf("Failed to schedule announcements: %v", err)
			}

			deps := commands.Deps{
				Feedback:  svc,
				Config:    cfg,
				Announcer: announcer,
				StartedAt: time.Now(),
				Version:   Version,
				List:      dispatcher.Commands,
			}
			for _, c := range commands.All(deps) {
				if err := dispatcher.Register(c); err != nil {
					log.Fatalf("Failed to register command %s: %v", c.Name, err)
				}
			}

			if err := dispatcher.Start(); err != nil {
				log.Fatalf("Failed to start dispatcher: %v", err)
			}
			announcer.Start()

			fmt.Println("\nherald is running...")
			fmt.Println("Press Ctrl+C to stop")

			// Setup signal handling for graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigChan

			log.Printf("Received signal: %v, shutting down gracefully...", sig)
			announcer.Stop()
			if err := dispatcher.Stop(); err != nil {
				log.Printf("Error during shutdown: %v", err)
			}

			log.Println("herald stopped")
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
}

// Package dispatch connects the Discord gateway to command handlers.
//
// The dispatcher owns one gateway session and a named command registry. Each
// registered command is reachable two ways:
//
//   - as a prefix command typed into a channel ("!status")
//   - as a slash command registered with Discord on startup ("/status")
//
// Both transports funnel into the same handler with an Invocation that
// carries the parsed input and a feedback.Context describing where replies
// go, so handlers never know which transport invoked them.
//
// # Slash command lifecycle
//
// Slash invocations are acknowledged with a deferred response before the
// handler runs, which buys the handler time beyond Discord's three second
// response window. The first follow-up the handler sends replaces the
// deferred placeholder. When a handler finishes without sending anything,
// the dispatcher sends a default confirmation so the invocation never shows
// a hanging "thinking" state.
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/heraldkit/herald/internal/config"
	"github.com/heraldkit/herald/internal/logger"
	"github.com/heraldkit/herald/pkg/constants"
	"github.com/heraldkit/herald/pkg/feedback"
)

// Session is the slice of the Discord API the dispatcher drives.
// *discordgo.Session satisfies it.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Handler runs one command invocation. A returned error is reported to the
// invoking user in the error colour and logged; handlers that already sent
// their own feedback should return nil.
type Handler func(ctx context.Context, inv *Invocation) error

// Command describes one chat command available on both transports.
type Command struct {
	// Name is the lowercase command name without prefix.
	Name string
	// Description is shown in Discord's slash command picker and in help.
	Description string
	// AdminOnly restricts the command to configured admins.
	AdminOnly bool
	// Options declares the slash command options, nil for none.
	Options []*discordgo.ApplicationCommandOption
	// Handler runs the command.
	Handler Handler
}

// Dispatcher routes gateway events to registered command handlers.
type Dispatcher struct {
	session  Session
	feedback *feedback.Service
	config   *config.Config

	mu       sync.RWMutex
	commands map[string]Command

	removers []func()

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Dispatcher on top of the given session.
func New(session Session, svc *feedback.Service, cfg *config.Config) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		session:  session,
		feedback: svc,
		config:   cfg,
		commands: make(map[string]Command),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register adds a command to the registry. Names are lowercased; registering
// the same name twice is an error.
func (d *Dispatcher) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Description == "" {
		return fmt.Errorf("command '%s' has no description", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command '%s' has no handler", cmd.Name)
	}

	name := strings.ToLower(cmd.Name)
	cmd.Name = name

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.commands[name]; exists {
		return fmt.Errorf("command '%s' is already registered", name)
	}
	d.commands[name] = cmd

	logger.WithField("command", name).Debug("command-registered")
	return nil
}

// Commands returns the registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]Command, 0, len(d.commands))
	for _, cmd := range d.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Start attaches the gateway handlers, opens the session and registers the
// slash commands with Discord.
func (d *Dispatcher) Start() error {
	logger.WithFields(logrus.Fields{
		"prefix":   d.config.Discord.CommandPrefix,
		"commands": len(d.Commands()),
	}).Info("starting-dispatcher")

	d.removers = append(d.removers,
		d.session.AddHandler(d.handleReady),
		d.session.AddHandler(d.handleMessageCreate),
		d.session.AddHandler(d.handleInteractionCreate),
	)

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	if err := d.syncCommands(); err != nil {
		if cerr := d.session.Close(); cerr != nil {
			logger.WithField("error", cerr).Warn("session-close-after-sync-failure")
		}
		return err
	}

	return nil
}

// Stop cancels in-flight handler contexts, detaches the gateway handlers and
// closes the session.
func (d *Dispatcher) Stop() error {
	logger.Info("stopping-dispatcher")

	d.cancel()
	for _, remove := range d.removers {
		remove()
	}
	d.removers = nil

	if err := d.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

// syncCommands replaces the application's slash command set with the registry.
func (d *Dispatcher) syncCommands() error {
	defs := make([]*discordgo.ApplicationCommand, 0)
	for _, cmd := range d.Commands() {
		defs = append(defs, &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		})
	}

	registered, err := d.session.ApplicationCommandBulkOverwrite(
		d.config.Discord.AppID, d.config.Discord.GuildID, defs)
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"count": len(registered),
		"guild": d.config.Discord.GuildID,
	}).Info("slash-commands-registered")
	return nil
}

func (d *Dispatcher) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.WithField("session_id", r.SessionID).Info("discord-session-ready")
}

// dispatch checks authorization, looks up the command and runs its handler.
// It reports failures to the user itself and returns true only when the
// handler ran and returned nil.
func (d *Dispatcher) dispatch(inv *Invocation) bool {
	log := logger.WithFields(logrus.Fields{
		"command": inv.Command,
		"user":    inv.UserID,
		"kind":    inv.Delivery.Kind().String(),
	})

	if !d.config.IsUserAuthorized(inv.UserID) {
		log.Warn("unauthorized-command-attempt")
		d.reply(func(ctx context.Context) error {
			_, err := d.feedback.Error(ctx, inv.Delivery,
				"You are not authorized to use this bot. Contact an administrator.")
			return err
		}, log)
		return false
	}

	d.mu.RLock()
	cmd, ok := d.commands[inv.Command]
	d.mu.RUnlock()
	if !ok {
		log.Warn("unknown-command")
		d.reply(func(ctx context.Context) error {
			_, err := d.feedback.Warning(ctx, inv.Delivery, fmt.Sprintf(
				"Unknown command `%s`. Try `%shelp`.", inv.Command, d.config.Discord.CommandPrefix))
			return err
		}, log)
		return false
	}

	if cmd.AdminOnly && !d.config.IsAdmin(inv.UserID) {
		log.Warn("admin-command-denied")
		d.reply(func(ctx context.Context) error {
			_, err := d.feedback.Error(ctx, inv.Delivery, fmt.Sprintf(
				"`%s` is restricted to administrators.", inv.Command))
			return err
		}, log)
		return false
	}

	ctx, cancel := context.WithTimeout(d.ctx, constants.DefaultHandlerTimeout)
	defer cancel()

	log.Info("command-dispatched")
	if err := cmd.Handler(ctx, inv); err != nil {
		log.WithField("error", err).Error("command-failed")
		d.reply(func(ctx context.Context) error {
			_, ferr := d.feedback.Error(ctx, inv.Delivery, "Command failed: "+err.Error())
			return ferr
		}, log)
		return false
	}

	log.Debug("command-completed")
	return true
}

// reply runs a dispatcher-generated feedback send with its own short timeout.
func (d *Dispatcher) reply(send func(context.Context) error, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(d.ctx, constants.DefaultFeedbackTimeout)
	defer cancel()

	if err := send(ctx); err != nil {
		log.WithField("error", err).Error("feedback-undeliverable")
	}
}

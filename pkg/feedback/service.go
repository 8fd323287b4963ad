// Package feedback routes human-readable command feedback to Discord.
//
// The package turns one logical message into one or more themed embeds and
// delivers them through a narrow transport interface, so callers never deal
// with Discord's length limits or with the difference between prefix commands
// and slash commands.
//
// # Delivery targets
//
//   - SendToChannel: a known text channel
//   - SendContextual: whatever channel or interaction the current invocation
//     arrived through, described by a Context
//   - SendPrivate: a user's direct-message channel, resolved on demand
//
// Each operation splits long content on word boundaries, sends the resulting
// embeds strictly in order, and stops at the first transport failure. Embeds
// already delivered stay delivered; there is no rollback and no retry here.
// Wrap the Sender in a RetrySender when transient-failure retry is wanted.
//
// # Usage
//
//	svc := feedback.NewService(session)
//	fctx := feedback.NewChannelContext(channelID)
//	if _, err := svc.Success(ctx, fctx, "All done."); err != nil {
//	    return err
//	}
package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/heraldkit/herald/internal/logger"
)

var (
	// ErrNoContext is returned by contextual sends when the Context carries
	// no active invocation.
	ErrNoContext = errors.New("no delivery context available")
	// ErrDMResolution is returned when a user's direct-message channel cannot
	// be created. No message content has been sent when it is returned.
	ErrDMResolution = errors.New("direct message channel resolution failed")
)

// Sender is the slice of the Discord API the feedback service needs.
// *discordgo.Session satisfies it, as does RetrySender.
type Sender interface {
	ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Message is one logical feedback message before chunking.
type Message struct {
	// Content is the message text. It may exceed Discord's limits; delivery
	// splits it into as many embeds as needed.
	Content string
	// Color is the embed colour, usually taken from a Theme.
	Color int
	// Target, when set to a user ID, prefixes every emitted embed with that
	// user's mention.
	Target string
}

// Service delivers feedback messages. It holds no per-invocation state; all
// routing state lives on the Context values passed in, so a single Service is
// safe for concurrent use.
type Service struct {
	sender Sender
	theme  Theme
}

// Option configures a Service.
type Option func(*Service)

// WithTheme overrides the default severity palette.
func WithTheme(t Theme) Option {
	return func(s *Service) { s.theme = t }
}

// NewService returns a Service delivering through the given sender.
func NewService(sender Sender, opts ...Option) *Service {
	s := &Service{sender: sender, theme: DefaultTheme}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Theme returns the severity palette the convenience helpers use.
func (s *Service) Theme() Theme {
	return s.theme
}

// SendToChannel delivers msg to the given text channel, one embed per chunk.
func (s *Service) SendToChannel(ctx context.Context, channelID string, msg Message) ([]*discordgo.Message, error) {
	sent, err := s.sendChunks(ctx, msg, func(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
		return s.sender.ChannelMessageSendEmbeds(channelID, []*discordgo.MessageEmbed{embed}, discordgo.WithContext(ctx))
	})
	if err != nil {
		logger.WithFields(logrus.Fields{
			"channel": channelID,
			"error":   err,
		}).Error("feedback-channel-send-failed")
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"channel": channelID,
		"chunks":  len(sent),
	}).Debug("feedback-sent-to-channel")
	return sent, nil
}

// SendContextual delivers msg through the invocation described by dctx:
// to the originating channel for channel contexts, or as interaction
// follow-ups for interaction contexts. A nil or empty context returns
// ErrNoContext without sending anything.
func (s *Service) SendContextual(ctx context.Context, dctx *Context, msg Message) ([]*discordgo.Message, error) {
	switch dctx.Kind() {
	case KindChannel:
		return s.SendToChannel(ctx, dctx.ChannelID(), msg)
	case KindInteraction:
		interaction := dctx.Interaction()
		sent, err := s.sendChunks(ctx, msg, func(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
			m, err := s.sender.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
				Embeds: []*discordgo.MessageEmbed{embed},
			}, discordgo.WithContext(ctx))
			if err != nil {
				return nil, err
			}
			dctx.markConsumed()
			return m, nil
		})
		if err != nil {
			logger.WithFields(logrus.Fields{
				"error": err,
			}).Error("feedback-followup-send-failed")
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"chunks": len(sent),
		}).Debug("feedback-sent-as-followup")
		return sent, nil
	default:
		return nil, ErrNoContext
	}
}

// SendPrivate delivers msg to the user's direct-message channel, creating the
// channel first. Resolution failures return ErrDMResolution before any
// content is sent.
func (s *Service) SendPrivate(ctx context.Context, userID string, msg Message) ([]*discordgo.Message, error) {
	channel, err := s.sender.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		logger.WithFields(logrus.Fields{
			"user":  userID,
			"error": err,
		}).Error("feedback-dm-resolution-failed")
		return nil, fmt.Errorf("%w: user %s: %w", ErrDMResolution, userID, err)
	}
	return s.SendToChannel(ctx, channel.ID, msg)
}

// SendEmbed delivers a single caller-built embed to the given channel,
// bypassing chunking. The caller keeps the embed within Discord's limits.
func (s *Service) SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	m, err := s.sender.ChannelMessageSendEmbeds(channelID, []*discordgo.MessageEmbed{embed}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("send embed to channel %s: %w", channelID, err)
	}
	return m, nil
}

// SendContextualEmbed delivers a single caller-built embed through the
// invocation described by dctx.
func (s *Service) SendContextualEmbed(ctx context.Context, dctx *Context, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	switch dctx.Kind() {
	case KindChannel:
		return s.SendEmbed(ctx, dctx.ChannelID(), embed)
	case KindInteraction:
		m, err := s.sender.FollowupMessageCreate(dctx.Interaction(), true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		}, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("send follow-up embed: %w", err)
		}
		dctx.markConsumed()
		return m, nil
	default:
		return nil, ErrNoContext
	}
}

// SendPrivateEmbed delivers a single caller-built embed to the user's
// direct-message channel.
func (s *Service) SendPrivateEmbed(ctx context.Context, userID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	channel, err := s.sender.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: user %s: %w", ErrDMResolution, userID, err)
	}
	return s.SendEmbed(ctx, channel.ID, embed)
}

// Info sends content through dctx in the theme's info colour.
func (s *Service) Info(ctx context.Context, dctx *Context, content string) ([]*discordgo.Message, error) {
	return s.SendContextual(ctx, dctx, Message{Content: content, Color: s.theme.Info})
}

// Success sends content through dctx in the theme's success colour.
func (s *Service) Success(ctx context.Context, dctx *Context, content string) ([]*discordgo.Message, error) {
	return s.SendContextual(ctx, dctx, Message{Content: content, Color: s.theme.Success})
}

// Warning sends content through dctx in the theme's warning colour.
func (s *Service) Warning(ctx context.Context, dctx *Context, content string) ([]*discordgo.Message, error) {
	return s.SendContextual(ctx, dctx, Message{Content: content, Color: s.theme.Warning})
}

// Error sends content through dctx in the theme's error colour.
func (s *Service) Error(ctx context.Context, dctx *Context, content string) ([]*discordgo.Message, error) {
	return s.SendContextual(ctx, dctx, Message{Content: content, Color: s.theme.Error})
}

// sendChunks splits msg and delivers the chunks strictly in order. The first
// failure aborts the remainder and surfaces the transport error wrapped with
// the chunk position; earlier chunks stay delivered.
func (s *Service) sendChunks(ctx context.Context, msg Message, send func(*discordgo.MessageEmbed) (*discordgo.Message, error)) ([]*discordgo.Message, error) {
	chunks := contentChunks(msg.Content, msg.Target)
	sent := make([]*discordgo.Message, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("send cancelled after %d of %d chunks: %w", i, len(chunks), err)
		}
		m, err := send(&discordgo.MessageEmbed{Description: chunk, Color: msg.Color})
		if err != nil {
			return nil, fmt.Errorf("send chunk %d of %d: %w", i+1, len(chunks), err)
		}
		sent = append(sent, m)
	}
	return sent, nil
}

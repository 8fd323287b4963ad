package dispatch

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/heraldkit/herald/internal/logger"
	"github.com/heraldkit/herald/pkg/constants"
	"github.com/heraldkit/herald/pkg/feedback"
)

// handleMessageCreate turns prefixed channel messages into invocations.
func (d *Dispatcher) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	prefix := d.config.Discord.CommandPrefix
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return
	}

	inv := &Invocation{
		Command:  strings.ToLower(fields[0]),
		Args:     fields[1:],
		UserID:   m.Author.ID,
		Username: m.Author.Username,
		Delivery: feedback.NewChannelContext(m.ChannelID),
	}

	logger.WithFields(logrus.Fields{
		"command": inv.Command,
		"user":    inv.UserID,
		"channel": m.ChannelID,
	}).Debug("prefix-command-received")

	d.dispatch(inv)
}

// handleInteractionCreate turns slash command interactions into invocations.
func (d *Dispatcher) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	user := interactionUser(i.Interaction)

	logger.WithFields(logrus.Fields{
		"command": data.Name,
		"user":    user.ID,
	}).Debug("slash-command-received")

	// Acknowledge within Discord's response window; the handler replies
	// through follow-ups afterwards.
	err := d.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.WithFields(logrus.Fields{
			"command": data.Name,
			"error":   err,
		}).Error("interaction-ack-failed")
		return
	}

	appID := i.AppID
	if appID == "" {
		appID = d.config.Discord.AppID
	}
	dctx := feedback.NewInteractionContext(appID, i.Token)

	inv := &Invocation{
		Command:  strings.ToLower(data.Name),
		Options:  data.Options,
		UserID:   user.ID,
		Username: user.Username,
		Delivery: dctx,
	}

	if d.dispatch(inv) && !dctx.Consumed() {
		// The handler sent nothing, so the deferred placeholder is still
		// showing. Replace it to close out the invocation.
		ctx, cancel := context.WithTimeout(d.ctx, constants.DefaultFeedbackTimeout)
		defer cancel()

		if _, err := d.feedback.Success(ctx, dctx, "Done."); err != nil {
			logger.WithFields(logrus.Fields{
				"command": inv.Command,
				"error":   err,
			}).Error("default-ack-undeliverable")
		}
	}
}

// interactionUser digs the invoking user out of an interaction, which stores
// it under Member in guilds and User in direct messages.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

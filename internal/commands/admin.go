package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/heraldkit/herald/internal/dispatch"
	"github.com/heraldkit/herald/pkg/feedback"
)

func (d Deps) say() dispatch.Command {
	return dispatch.Command{
		Name:        "say",
		Description: "Post a message to a channel as the bot",
		AdminOnly:   true,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to post into",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Message to post",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			channelID := inv.ChannelOption("channel")
			text := inv.Text()
			if channelID == "" {
				channelID = dispatch.ParseChannelMention(inv.Arg(0))
				text = inv.TextFrom(1)
			}
			if channelID == "" || text == "" {
				_, err := d.Feedback.Warning(ctx, inv.Delivery, fmt.Sprintf(
					"Usage: `%ssay <channel> <message>`", d.Config.Discord.CommandPrefix))
				return err
			}

			if _, err := d.Feedback.SendToChannel(ctx, channelID, feedback.Message{
				Content: text,
				Color:   d.Feedback.Theme().Info,
			}); err != nil {
				return fmt.Errorf("post to channel %s: %w", channelID, err)
			}

			_, err := d.Feedback.Success(ctx, inv.Delivery, fmt.Sprintf("Posted to <#%s>.", channelID))
			return err
		},
	}
}

func (d Deps) dm() dispatch.Command {
	return dispatch.Command{
		Name:        "dm",
		Description: "Send a user a direct message from the bot",
		AdminOnly:   true,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Recipient",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Message to send",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			userID := inv.UserOption("user")
			text := inv.Text()
			if userID == "" {
				userID = dispatch.ParseUserMention(inv.Arg(0))
				text = inv.TextFrom(1)
			}
			if userID == "" || text == "" {
				_, err := d.Feedback.Warning(ctx, inv.Delivery, fmt.Sprintf(
					"Usage: `%sdm <user> <message>`", d.Config.Discord.CommandPrefix))
				return err
			}

			if _, err := d.Feedback.SendPrivate(ctx, userID, feedback.Message{
				Content: text,
				Color:   d.Feedback.Theme().Info,
			}); err != nil {
				if errors.Is(err, feedback.ErrDMResolution) {
					_, ferr := d.Feedback.Error(ctx, inv.Delivery,
						"Could not open a direct message channel with that user. They may have DMs disabled.")
					return ferr
				}
				return fmt.Errorf("direct message to %s: %w", userID, err)
			}

			_, err := d.Feedback.Success(ctx, inv.Delivery, fmt.Sprintf("Delivered privately to <@%s>.", userID))
			return err
		},
	}
}

func (d Deps) announce() dispatch.Command {
	return dispatch.Command{
		Name:        "announce",
		Description: "Trigger a configured announcement now",
		AdminOnly:   true,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Announcement name from the configuration",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			name := inv.StringOption("name")
			if name == "" {
				name = inv.Arg(0)
			}
			if name == "" {
				_, err := d.Feedback.Warning(ctx, inv.Delivery, fmt.Sprintf(
					"Usage: `%sannounce <name>`", d.Config.Discord.CommandPrefix))
				return err
			}
			if d.Announcer == nil {
				_, err := d.Feedback.Warning(ctx, inv.Delivery, "No announcements are configured.")
				return err
			}

			if err := d.Announcer.Trigger(ctx, name); err != nil {
				return fmt.Errorf("trigger announcement '%s': %w", name, err)
			}

			_, err := d.Feedback.Success(ctx, inv.Delivery, fmt.Sprintf("Announcement '%s' sent.", name))
			return err
		},
	}
}

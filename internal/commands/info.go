package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/heraldkit/herald/internal/dispatch"
	"github.com/heraldkit/herald/pkg/feedback"
)

func (d Deps) ping() dispatch.Command {
	return dispatch.Command{
		Name:        "ping",
		Description: "Check that the bot is alive",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			_, err := d.Feedback.Success(ctx, inv.Delivery, "Pong!")
			return err
		},
	}
}

func (d Deps) echo() dispatch.Command {
	return dispatch.Command{
		Name:        "echo",
		Description: "Repeat the given text back to you",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Text to repeat",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			text := inv.Text()
			if text == "" {
				_, err := d.Feedback.Warning(ctx, inv.Delivery, "Nothing to echo. Give me some text.")
				return err
			}
			_, err := d.Feedback.SendContextual(ctx, inv.Delivery, feedback.Message{
				Content: text,
				Color:   d.Feedback.Theme().Info,
				Target:  inv.UserID,
			})
			return err
		},
	}
}

func (d Deps) help() dispatch.Command {
	return dispatch.Command{
		Name:        "help",
		Description: "List the available commands",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			prefix := d.Config.Discord.CommandPrefix

			var b strings.Builder
			for _, cmd := range d.List() {
				fmt.Fprintf(&b, "`%s%s` - %s", prefix, cmd.Name, cmd.Description)
				if cmd.AdminOnly {
					b.WriteString(" *(admin)*")
				}
				b.WriteByte('\n')
			}

			embed := &discordgo.MessageEmbed{
				Title:       "Herald Commands",
				Description: b.String(),
				Color:       d.Feedback.Theme().Info,
				Footer: &discordgo.MessageEmbedFooter{
					Text: "Every command is also available as a slash command.",
				},
			}
			_, err := d.Feedback.SendContextualEmbed(ctx, inv.Delivery, embed)
			return err
		},
	}
}

func (d Deps) status() dispatch.Command {
	return dispatch.Command{
		Name:        "status",
		Description: "Show bot status and uptime",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			jobs := 0
			if d.Announcer != nil {
				jobs = d.Announcer.Jobs()
			}

			embed := &discordgo.MessageEmbed{
				Title: "Herald Status",
				Color: d.Feedback.Theme().Info,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Version", Value: d.Version, Inline: true},
					{Name: "Uptime", Value: time.Since(d.StartedAt).Round(time.Second).String(), Inline: true},
					{Name: "Commands", Value: strconv.Itoa(len(d.List())), Inline: true},
					{Name: "Announcements", Value: strconv.Itoa(jobs), Inline: true},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}
			_, err := d.Feedback.SendContextualEmbed(ctx, inv.Delivery, embed)
			return err
		},
	}
}

func (d Deps) whoami() dispatch.Command {
	return dispatch.Command{
		Name:        "whoami",
		Description: "Show your user ID and permission level",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) error {
			role := "user"
			if d.Config.IsAdmin(inv.UserID) {
				role = "admin"
			}

			embed := &discordgo.MessageEmbed{
				Title: "Who You Are",
				Color: d.Feedback.Theme().Info,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Username", Value: inv.Username, Inline: true},
					{Name: "User ID", Value: inv.UserID, Inline: true},
					{Name: "Role", Value: role, Inline: true},
				},
			}
			_, err := d.Feedback.SendContextualEmbed(ctx, inv.Delivery, embed)
			return err
		},
	}
}

package dispatch

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/heraldkit/herald/pkg/feedback"
)

// Invocation carries one command invocation across the handler boundary.
type Invocation struct {
	// Command is the lowercase command name.
	Command string
	// Args holds the whitespace-split arguments of a prefix invocation.
	// Empty for slash invocations, which carry Options instead.
	Args []string
	// Options holds the slash command options. Nil for prefix invocations.
	Options []*discordgo.ApplicationCommandInteractionDataOption
	// UserID and Username identify the invoking user.
	UserID   string
	Username string
	// Delivery says where feedback for this invocation goes.
	Delivery *feedback.Context
}

// Arg returns the i-th prefix argument or "" when out of range.
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// StringOption returns the named slash string option, or "" when absent.
func (inv *Invocation) StringOption(name string) string {
	for _, opt := range inv.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// UserOption returns the user ID of the named slash user option, or "".
func (inv *Invocation) UserOption(name string) string {
	for _, opt := range inv.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(nil).ID
		}
	}
	return ""
}

// ChannelOption returns the channel ID of the named slash channel option, or "".
func (inv *Invocation) ChannelOption(name string) string {
	for _, opt := range inv.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			return opt.ChannelValue(nil).ID
		}
	}
	return ""
}

// Text returns the free-text input of the invocation: the "text" option for
// slash invocations, the joined arguments for prefix invocations.
func (inv *Invocation) Text() string {
	if len(inv.Options) > 0 {
		return inv.StringOption("text")
	}
	return strings.Join(inv.Args, " ")
}

// TextFrom behaves like Text but skips the first n prefix arguments, for
// commands whose leading arguments are not free text.
func (inv *Invocation) TextFrom(n int) string {
	if len(inv.Options) > 0 {
		return inv.StringOption("text")
	}
	if n >= len(inv.Args) {
		return ""
	}
	return strings.Join(inv.Args[n:], " ")
}

// ParseUserMention extracts the user ID from a raw mention like <@123> or
// <@!123>, or returns the input unchanged when it is already a bare ID.
// Returns "" for anything else.
func ParseUserMention(s string) string {
	id := s
	if strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">") {
		id = strings.TrimSuffix(strings.TrimPrefix(id, "<@"), ">")
		id = strings.TrimPrefix(id, "!")
	}
	if id == "" {
		return ""
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return id
}

// ParseChannelMention extracts the channel ID from a raw mention like <#123>,
// or returns the input unchanged when it is already a bare ID.
// Returns "" for anything else.
func ParseChannelMention(s string) string {
	id := s
	if strings.HasPrefix(id, "<#") && strings.HasSuffix(id, ">") {
		id = strings.TrimSuffix(strings.TrimPrefix(id, "<#"), ">")
	}
	if id == "" {
		return ""
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return id
}

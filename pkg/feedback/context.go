package feedback

import "github.com/bwmarrin/discordgo"

// ContextKind identifies the transport an invocation arrived through.
type ContextKind int

const (
	// KindNone means no invocation is active; contextual sends fail with ErrNoContext.
	KindNone ContextKind = iota
	// KindChannel routes contextual sends to the originating text channel.
	KindChannel
	// KindInteraction routes contextual sends through interaction follow-ups.
	KindInteraction
)

// String returns the kind name used in log fields.
func (k ContextKind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindInteraction:
		return "interaction"
	default:
		return "none"
	}
}

// Context describes where responses to one command invocation should go.
// The dispatcher creates one per invocation and hands it to the handler;
// handlers pass it to the contextual send operations.
//
// A Context belongs to a single invocation and is not safe for concurrent
// use. A nil Context behaves like KindNone.
type Context struct {
	kind      ContextKind
	channelID string
	appID     string
	token     string
	consumed  bool
}

// NewChannelContext returns a Context that answers into the given text channel.
func NewChannelContext(channelID string) *Context {
	return &Context{kind: KindChannel, channelID: channelID}
}

// NewInteractionContext returns a Context that answers through follow-ups to
// the interaction identified by the application ID and interaction token.
func NewInteractionContext(appID, token string) *Context {
	return &Context{kind: KindInteraction, appID: appID, token: token}
}

// Kind reports which transport the Context routes to.
func (c *Context) Kind() ContextKind {
	if c == nil {
		return KindNone
	}
	return c.kind
}

// ChannelID returns the originating channel for KindChannel contexts, "" otherwise.
func (c *Context) ChannelID() string {
	if c == nil {
		return ""
	}
	return c.channelID
}

// Interaction returns the minimal interaction value follow-up calls need,
// or nil for non-interaction contexts.
func (c *Context) Interaction() *discordgo.Interaction {
	if c == nil || c.kind != KindInteraction {
		return nil
	}
	return &discordgo.Interaction{AppID: c.appID, Token: c.token}
}

// Consumed reports whether at least one follow-up was successfully delivered
// for this interaction, replacing the deferred acknowledgement. It never
// becomes true for channel contexts and never reverts to false.
func (c *Context) Consumed() bool {
	if c == nil {
		return false
	}
	return c.consumed
}

func (c *Context) markConsumed() {
	c.consumed = true
}

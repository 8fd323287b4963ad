// Package commands defines herald's built-in chat commands.
package commands

import (
	"context"
	"time"

	"github.com/heraldkit/herald/internal/config"
	"github.com/heraldkit/herald/internal/dispatch"
	"github.com/heraldkit/herald/pkg/feedback"
)

// Announcer triggers configured announcements and reports how many exist.
type Announcer interface {
	Trigger(ctx context.Context, name string) error
	Jobs() int
}

// Deps carries everything the built-in commands need.
type Deps struct {
	Feedback  *feedback.Service
	Config    *config.Config
	Announcer Announcer
	StartedAt time.Time
	Version   string
	// List returns the full registered command set. It is wired to the
	// dispatcher after construction so help can describe every command,
	// including itself.
	List func() []dispatch.Command
}

// All returns the built-in command set.
func All(d Deps) []dispatch.Command {
	return []dispatch.Command{
		d.ping(),
		d.echo(),
		d.help(),
		d.status(),
		d.whoami(),
		d.say(),
		d.dm(),
		d.announce(),
	}
}

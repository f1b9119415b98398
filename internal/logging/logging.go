// Package logging builds the hclog logger shared by every command.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Options selects the level and encoding of the root logger.
type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool
	Output  io.Writer // defaults to os.Stderr
}

// Level returns the level implied by the flags. Quiet wins over Verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New returns a root logger tagged with a fresh run_id.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	color := hclog.AutoColor
	if opts.JSON {
		color = hclog.ColorOff
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "nearestcolour",
		Output:     out,
		Level:      opts.Level(),
		JSONFormat: opts.JSON,
		Color:      color,
	})
	return logger.With("run_id", uuid.New().String())
}

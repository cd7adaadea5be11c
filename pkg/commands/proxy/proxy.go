// Package proxy implements `sggit proxy`: run any git command inside the
// repository, e.g. to push or pull.
package proxy

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/types"
)

// ProxyOptions holds options for the proxy command.
type ProxyOptions struct {
	// Command is a whitespace separated git command line, used when Args
	// is empty.
	Command string
	Args    []string

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	internal.LoadOptions
}

// GitArgs returns the git arguments the options describe.
func (o ProxyOptions) GitArgs() []string {
	if len(o.Args) > 0 {
		return o.Args
	}
	return strings.Fields(o.Command)
}

// Proxy runs the git command in the repository root, streaming its output.
func Proxy(ctx context.Context, opts ProxyOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.proxy")

	args := opts.GitArgs()
	if len(args) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no git command given")
	}

	c, err := internal.Load(ctx, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	logger.Debug().Strs("args", args).Str("repo", c.Root()).Msg("Proxying git command")
	if err := c.Repo.Run(ctx, args, stdout, stderr); err != nil {
		return nil, err
	}

	result := c.NewResult("proxy")
	result.Message = "git " + strings.Join(args, " ")
	return result, nil
}

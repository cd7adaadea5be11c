// Package commit implements `sggit commit`: update the repository from this
// platform and commit with a message chosen by the user.
package commit

import (
	"context"
	"strings"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	batcher "github.com/Duckilicious/sggit/pkg/commit"
	"github.com/Duckilicious/sggit/pkg/copier"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/types"
	"go.uber.org/multierr"
)

// CommitOptions holds options for the commit command.
type CommitOptions struct {
	Message string

	internal.LoadOptions
}

// Commit copies every resolved pair into the repository and commits the
// written files together with the mapping file, using Message as subject.
func Commit(ctx context.Context, opts CommitOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.commit")

	if strings.TrimSpace(opts.Message) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a commit message is required")
	}

	c, err := internal.Load(ctx, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	res, err := copier.New(c.FS).Copy(c.Pairs(), c.Root(), types.ToRepo)
	if err != nil {
		return nil, err
	}

	result := c.NewResult("commit")
	internal.ReportCopy(result, res)

	touched := append(batcher.FromCopied(res.Copied), batcher.Entry{RepoPath: paths.MappingFileName})
	outcome, err := c.Commit(ctx, touched, opts.Message, opts.Message)
	if err != nil {
		return result, multierr.Append(res.Err(), err)
	}
	result.Commit = outcome.Summary()

	logger.Info().
		Int("copied", len(res.Copied)).
		Int("failed", len(res.Failures)).
		Str("commit", string(outcome.Status)).
		Msg("Command finished")
	return result, res.Err()
}

// Package update implements `sggit update`: copy every file bound on this
// platform into the repository and commit what changed.
package update

import (
	"context"
	"fmt"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/commit"
	"github.com/Duckilicious/sggit/pkg/copier"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/types"
	"go.uber.org/multierr"
)

// UpdateOptions holds options for the update command.
type UpdateOptions struct {
	internal.LoadOptions
}

// Update copies all resolved pairs to the repository, overwriting the repo
// copies unconditionally, and commits the written files. Per-file failures
// do not stop the batch: the successes are committed first and the failures
// are returned combined.
func Update(ctx context.Context, opts UpdateOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.update")

	c, err := internal.Load(ctx, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	pairs := c.Pairs()
	res, err := copier.New(c.FS).Copy(pairs, c.Root(), types.ToRepo)
	if err != nil {
		return nil, err
	}

	result := c.NewResult("update")
	internal.ReportCopy(result, res)

	subject := fmt.Sprintf("Update %d file(s) from %s", len(res.Copied), c.Platform())
	outcome, err := c.Commit(ctx, commit.FromCopied(res.Copied), "", subject)
	if err != nil {
		return result, multierr.Append(res.Err(), err)
	}
	result.Commit = outcome.Summary()

	logger.Info().
		Int("count", len(pairs)).
		Int("copied", len(res.Copied)).
		Int("failed", len(res.Failures)).
		Str("commit", string(outcome.Status)).
		Msg("Command finished")
	return result, res.Err()
}

package syncer

import (
	"os"
	"time"

	"github.com/Duckilicious/sggit/pkg/copier"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/types"
)

// Item is the planned action for one pair.
type Item struct {
	Pair     types.Pair
	Repo     FileState
	External FileState
	Verdict
}

// Stamper records the last sync time of a binding. mapping.Store
// implements it.
type Stamper interface {
	MarkSynced(repoPath string, p platform.Platform, at time.Time) error
}

// Syncer plans and applies sync decisions.
type Syncer struct {
	fs     types.FS
	engine *copier.Engine
	policy Policy
	now    func() time.Time
}

// New creates a syncer. A nil policy means ExternalNewerWins.
func New(fsys types.FS, policy Policy) *Syncer {
	if policy == nil {
		policy = ExternalNewerWins
	}
	return &Syncer{
		fs:     fsys,
		engine: copier.New(fsys),
		policy: policy,
		now:    time.Now,
	}
}

// Plan stats both sides of every pair and asks the policy for a verdict.
// It performs no writes.
func (s *Syncer) Plan(pairs []types.Pair, repoRoot string) ([]Item, error) {
	logger := logging.GetLogger("syncer")

	items := make([]Item, 0, len(pairs))
	for _, pair := range pairs {
		repoFile, err := paths.RepoFilePath(repoRoot, pair.RepoPath)
		if err != nil {
			return nil, err
		}
		repoState, err := s.state(repoFile)
		if err != nil {
			return nil, err
		}
		extState, err := s.state(pair.RealPath)
		if err != nil {
			return nil, err
		}

		item := Item{
			Pair:     pair,
			Repo:     repoState,
			External: extState,
			Verdict:  s.policy(repoState, extState),
		}
		logger.Debug().
			Str("repo_path", pair.RepoPath).
			Str("real_path", pair.RealPath).
			Str("decision", item.Decision.String()).
			Str("reason", item.Reason).
			Msg("Planned")
		items = append(items, item)
	}
	return items, nil
}

// Apply copies every CopyToExternal item from the repo to its real path and
// stamps last_synced on the store for current. Skip items are untouched.
func (s *Syncer) Apply(items []Item, repoRoot string, store Stamper, current platform.Platform) (*copier.Result, error) {
	logger := logging.GetLogger("syncer")

	var pairs []types.Pair
	for _, item := range items {
		if item.Decision == CopyToExternal {
			pairs = append(pairs, item.Pair)
		}
	}

	result, err := s.engine.Copy(pairs, repoRoot, types.FromRepo)
	if err != nil {
		return nil, err
	}

	if store != nil {
		now := s.now()
		for _, c := range result.Copied {
			if err := store.MarkSynced(c.RepoPath, current, now); err != nil {
				return result, err
			}
		}
	}

	logger.Info().
		Int("planned", len(items)).
		Int("copied", len(result.Copied)).
		Int("failed", len(result.Failures)).
		Msg("Sync applied")
	return result, nil
}

func (s *Syncer) state(path string) (FileState, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileState{}, nil
		}
		return FileState{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return FileState{}, errors.Newf(errors.ErrFileAccess, "%s is a directory", path).
			WithDetail("path", path)
	}
	return FileState{Exists: true, ModTime: info.ModTime()}, nil
}

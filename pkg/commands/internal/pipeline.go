// Package internal holds the steps every sggit command shares: loading the
// machine settings, the layered configuration, the mapping store and the
// repository, and turning copy results into command reports.
package internal

import (
	"context"

	"github.com/Duckilicious/sggit/pkg/commit"
	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/copier"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/mapping"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/settings"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/Duckilicious/sggit/pkg/vcs"
)

// LoadOptions controls what Load prepares.
type LoadOptions struct {
	// FS defaults to the OS filesystem
	FS types.FS
	// SettingsPath defaults to paths.SettingsFile()
	SettingsPath string
	// Config skips config.Load when set
	Config *config.Config
	// Backend defaults to a git backend built from the configuration
	Backend vcs.Backend
	// AllowMissingStore starts from an empty store when the mapping file
	// does not exist yet
	AllowMissingStore bool
	// SkipRepository leaves Context.Repo nil
	SkipRepository bool
}

// Context is everything a command needs after the common loading steps.
type Context struct {
	FS       types.FS
	Settings *settings.Settings
	Config   *config.Config
	Store    *mapping.Store
	Repo     vcs.Repository
}

// Platform returns the current machine's platform.
func (c *Context) Platform() platform.Platform {
	return c.Settings.Platform
}

// Root returns the repository root.
func (c *Context) Root() string {
	return c.Settings.RepoPath
}

// Pairs resolves the store for the current platform.
func (c *Context) Pairs() []types.Pair {
	return platform.Resolve(c.Store, c.Platform())
}

// SaveStore rewrites the mapping file.
func (c *Context) SaveStore() error {
	return c.Store.Save(c.FS, c.Root())
}

// NewResult creates a command result stamped with the platform and root.
func (c *Context) NewResult(command string) *types.CommandResult {
	result := types.NewCommandResult(command)
	result.Platform = c.Platform().String()
	result.RepoRoot = c.Root()
	return result
}

// ParserFor builds the platform parser the configuration asks for.
func ParserFor(cfg *config.Config) *platform.Parser {
	return platform.NewParser(cfg.Platform.Aliases, cfg.Platform.Strict)
}

// Load runs settings → config → repository → store.
func Load(ctx context.Context, opts LoadOptions) (*Context, error) {
	logger := logging.GetLogger("commands.internal")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = paths.SettingsFile()
	}

	// The repository overlay can only be read once settings name the
	// repository, so settings are parsed with the user-level config.
	cfg := opts.Config
	base := cfg
	if base == nil {
		var err error
		if base, err = config.Load(""); err != nil {
			return nil, err
		}
	}

	s, err := settings.Load(settingsPath, ParserFor(base))
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		if cfg, err = config.Load(s.RepoPath); err != nil {
			return nil, err
		}
	}

	c := &Context{FS: fsys, Settings: s, Config: cfg}

	if !opts.SkipRepository {
		backend := opts.Backend
		if backend == nil {
			backend = vcs.NewGitBackend(cfg)
		}
		if c.Repo, err = backend.Open(ctx, s.RepoPath); err != nil {
			return nil, err
		}
	}

	store, err := mapping.Load(fsys, s.RepoPath)
	switch {
	case err == nil:
		c.Store = store
	case errors.IsErrorCode(err, errors.ErrConfigNotFound) && opts.AllowMissingStore:
		logger.Debug().Str("repo", s.RepoPath).Msg("No mapping file yet, starting empty")
		c.Store = mapping.New()
	case errors.IsErrorCode(err, errors.ErrConfigNotFound):
		return nil, errors.Wrapf(err, errors.ErrConfigNotFound,
			"no %s in %s, run 'sggit init' first", paths.MappingFileName, s.RepoPath)
	default:
		return nil, err
	}

	logger.Debug().
		Str("platform", c.Platform().String()).
		Str("repo", c.Root()).
		Int("artifacts", c.Store.Len()).
		Msg("Command context loaded")
	return c, nil
}

// Commit runs the commit batcher with the configured template. user is the
// subject given on the command line, fallback the command's own subject.
func (c *Context) Commit(ctx context.Context, touched []commit.Entry, user, fallback string) (*commit.Outcome, error) {
	subject := commit.PickSubject(user, c.Config.Commit.Subject, fallback)
	builder, err := commit.NewMessageBuilder(c.Config.Commit.Template, subject)
	if err != nil {
		return nil, err
	}
	return commit.BatchAndCommit(ctx, c.Repo, touched, builder)
}

// ReportCopy adds one file report per copied, skipped and failed pair.
func ReportCopy(result *types.CommandResult, res *copier.Result) {
	for _, c := range res.Copied {
		result.Add(types.FileReport{RepoPath: c.RepoPath, RealPath: c.RealPath, Status: types.FileCopied})
	}
	for _, p := range res.Skipped {
		result.Add(types.FileReport{RepoPath: p.RepoPath, RealPath: p.RealPath, Status: types.FileSkipped, Detail: "same file"})
	}
	for _, f := range res.Failures {
		result.Add(types.FileReport{RepoPath: f.Pair.RepoPath, RealPath: f.Pair.RealPath, Status: types.FileFailed, Detail: f.Err.Error()})
	}
}

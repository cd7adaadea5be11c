package initialize

import (
	"context"
	"fmt"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
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

// InitialSubject is the subject of the commit init creates.
const InitialSubject = "Initial commit"

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// Platform names this machine. Empty prompts (when Prompter is set) or
	// falls back to the running OS.
	Platform string
	// RepoPath is the repository root. Empty prompts or uses ~/sggit.
	RepoPath string
	// Force rewrites existing settings.
	Force bool
	// Prompter asks for missing values; nil never prompts.
	Prompter Prompter

	SettingsPath string
	FS           types.FS
	Config       *config.Config
	Backend      vcs.Backend
}

// Init writes the machine settings, creates or opens the repository, tracks
// the settings file and the mapping file, and records an initial commit.
func Init(ctx context.Context, opts InitOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.init")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = paths.SettingsFile()
	}

	if settings.Exists(settingsPath) && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"settings already exist at %s, use --force to overwrite", settingsPath).
			WithDetail("path", settingsPath)
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(""); err != nil {
			return nil, err
		}
	}

	// 1. Platform and repository location
	p, err := choosePlatform(opts, cfg)
	if err != nil {
		return nil, err
	}
	repoRoot, err := chooseRepo(opts)
	if err != nil {
		return nil, err
	}

	result := types.NewCommandResult("init")
	result.Platform = p.String()
	result.RepoRoot = repoRoot
	if !p.IsCanonical() {
		result.Message = fmt.Sprintf("%q is not a known platform name, using it as a custom machine class", p)
		log.Warn().Str("platform", p.String()).Msg("Unrecognized platform name")
	}

	// 2. Repository
	if err := fsys.MkdirAll(repoRoot, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create repository directory %s", repoRoot)
	}
	backend := opts.Backend
	if backend == nil {
		backend = vcs.NewGitBackend(cfg)
	}
	repo, err := backend.Open(ctx, repoRoot)
	if errors.IsErrorCode(err, errors.ErrVCSNotARepo) {
		log.Info().Str("repo", repoRoot).Msg("Initializing repository")
		repo, err = backend.Init(ctx, repoRoot)
	}
	if err != nil {
		return nil, err
	}

	platformDir, err := paths.RepoFilePath(repoRoot, paths.PlatformDir(p.String()))
	if err != nil {
		return nil, err
	}
	if err := fsys.MkdirAll(platformDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", platformDir)
	}

	// 3. Settings, only once the repository exists
	s := &settings.Settings{Platform: p, RepoPath: repoRoot}
	if err := s.Save(fsys, settingsPath); err != nil {
		return nil, err
	}
	log.Info().Str("path", settingsPath).Msg("Wrote settings")

	// 4. Mapping store. A repository cloned from another machine keeps its
	// artifacts; this platform's bindings are added next to them.
	store, err := mapping.Load(fsys, repoRoot)
	if errors.IsErrorCode(err, errors.ErrConfigNotFound) {
		store, err = mapping.New(), nil
	}
	if err != nil {
		return nil, err
	}

	pairs := []types.Pair{
		{RealPath: settingsPath, RepoPath: paths.SettingsRepoPath(p.String())},
		{RealPath: paths.MappingFile(repoRoot), RepoPath: paths.MappingFileName},
	}
	for _, pair := range pairs {
		if err := rebind(store, pair, p); err != nil {
			return nil, err
		}
		result.Add(types.FileReport{RepoPath: pair.RepoPath, RealPath: pair.RealPath, Status: types.FileTracked})
	}
	if err := store.Save(fsys, repoRoot); err != nil {
		return nil, err
	}

	// 5. Copy and commit
	copied, err := copier.New(fsys).Copy(pairs[:1], repoRoot, types.ToRepo)
	if err != nil {
		return nil, err
	}
	if err := copied.Err(); err != nil {
		return nil, err
	}

	touched := append(commit.FromCopied(copied.Copied), commit.Entry{RepoPath: paths.MappingFileName})
	ictx := &internal.Context{FS: fsys, Settings: s, Config: cfg, Store: store, Repo: repo}
	outcome, err := ictx.Commit(ctx, touched, InitialSubject, InitialSubject)
	if err != nil {
		return nil, err
	}
	result.Commit = outcome.Summary()

	log.Info().
		Str("platform", p.String()).
		Str("repo", repoRoot).
		Str("commit", string(outcome.Status)).
		Msg("Command finished")
	return result, nil
}

func choosePlatform(opts InitOptions, cfg *config.Config) (platform.Platform, error) {
	name := opts.Platform
	if name == "" {
		name = platform.Current().String()
		if opts.Prompter != nil {
			answer, err := opts.Prompter.Ask("Platform name for this machine", name)
			if err != nil {
				return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read platform")
			}
			name = answer
		}
	}
	return internal.ParserFor(cfg).Parse(name)
}

func chooseRepo(opts InitOptions) (string, error) {
	repo := opts.RepoPath
	if repo == "" {
		repo = paths.DefaultRepoDir()
		if opts.Prompter != nil {
			answer, err := opts.Prompter.Ask("Repository location", repo)
			if err != nil {
				return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read repository location")
			}
			repo = answer
		}
	}
	return paths.Absolute(repo)
}

// rebind points the platform's binding for pair.RepoPath at pair.RealPath,
// replacing an older binding left by a previous init.
func rebind(store *mapping.Store, pair types.Pair, p platform.Platform) error {
	if _, err := store.RemoveBinding(pair.RepoPath, p); err != nil && !errors.IsErrorCode(err, errors.ErrNotFound) {
		return err
	}
	return store.AddBinding(pair.RepoPath, p, pair.RealPath)
}

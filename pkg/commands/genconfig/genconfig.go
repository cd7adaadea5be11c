package genconfig

import (
	"path/filepath"

	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/settings"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// Write creates the user config file from the commented defaults
	// instead of printing the effective configuration.
	Write bool
	// Force overwrites an existing user config file.
	Force bool
	// Target defaults to paths.ConfigFile().
	Target string
	FS     types.FS
}

// GenConfig prints the effective configuration as TOML, or writes the
// commented default file.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	if !opts.Write {
		cfg, err := config.Load(repoRoot())
		if err != nil {
			return nil, err
		}
		content, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
		}
		logger.Debug().Msg("Outputting effective config")
		return &types.GenConfigResult{ConfigContent: string(content), FilesWritten: []string{}}, nil
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	target := opts.Target
	if target == "" {
		target = paths.ConfigFile()
	}
	content := config.GenerateConfigContent()
	result := &types.GenConfigResult{ConfigContent: content, FilesWritten: []string{}}

	if _, err := fsys.Stat(target); err == nil && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to overwrite", target).
			WithDetail("path", target)
	}
	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
	}
	if err := filesystem.WriteFileAtomic(fsys, target, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}

// repoRoot returns the configured repository when settings exist, so its
// .sggit.toml overlay is part of the effective configuration.
func repoRoot() string {
	path := paths.SettingsFile()
	if !settings.Exists(path) {
		return ""
	}
	s, err := settings.Load(path, nil)
	if err != nil {
		return ""
	}
	return s.RepoPath
}

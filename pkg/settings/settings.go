// Package settings persists the per-machine settings: which platform this
// machine identifies as and where the repository lives.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/types"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment overrides
const (
	EnvPlatform = "SGGIT_PLATFORM"
	EnvRepoPath = "SGGIT_REPO_PATH"
)

// Settings is the per-machine state written by init.
type Settings struct {
	Platform platform.Platform `json:"platform" koanf:"platform"`
	RepoPath string            `json:"repo_path" koanf:"repo_path"`
}

// envKey maps the two override variables onto settings keys. Returning ""
// makes koanf skip the variable.
func envKey(s string) string {
	switch s {
	case EnvPlatform:
		return "platform"
	case EnvRepoPath:
		return "repo_path"
	default:
		return ""
	}
}

// Exists reports whether a settings file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the settings file at path and applies environment overrides.
// parser normalizes the platform name; nil uses the built-in aliases.
func Load(path string, parser *platform.Parser) (*Settings, error) {
	logger := logging.GetLogger("settings")
	if parser == nil {
		parser = platform.NewParser(nil, false)
	}

	k := koanf.New(".")
	fileFound := Exists(path)
	if fileFound {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings file %s", path).
				WithDetail("path", path)
		}
	}
	if err := k.Load(env.Provider("SGGIT_", ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to read settings from environment")
	}

	if !fileFound && (k.String("platform") == "" || k.String("repo_path") == "") {
		return nil, errors.Newf(errors.ErrSettingsNotFound,
			"settings file %s not found, run 'sggit init' first", path).
			WithDetail("path", path)
	}

	p, err := parser.Parse(k.String("platform"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "settings file %s has an invalid platform", path)
	}

	repoPath := strings.TrimSpace(k.String("repo_path"))
	if repoPath == "" {
		return nil, errors.Newf(errors.ErrConfigInvalid, "settings file %s has an empty repo_path", path)
	}
	repoPath, err = paths.Absolute(repoPath)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("platform", p.String()).
		Str("repo_path", repoPath).
		Msg("Loaded settings")

	return &Settings{Platform: p, RepoPath: repoPath}, nil
}

// Save writes the settings atomically to path, creating its directory.
func (s *Settings) Save(fsys types.FS, path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := filesystem.WriteFileAtomic(fsys, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write settings file %s", path).
			WithDetail("path", path)
	}
	return nil
}

// Encode returns the indented JSON form of the settings.
func (s *Settings) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	return append(data, '\n'), nil
}

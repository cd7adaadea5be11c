package paths

import (
	"os"
	"path/filepath"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvSettingsFile overrides the location of the per-machine settings file
	EnvSettingsFile = "SGGIT_SETTINGS"

	// EnvConfigDir overrides the XDG config directory for sggit
	EnvConfigDir = "SGGIT_CONFIG_DIR"

	// EnvStateHome is the XDG state base directory
	EnvStateHome = "XDG_STATE_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These are part of the on-disk layout shared between machines
// and are not configurable.
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "sggit"

	// SettingsFileName is the per-machine settings file under $HOME
	SettingsFileName = ".sggit.json"

	// MappingFileName is the mapping store at the repository root
	MappingFileName = "repo_config.json"

	// RepoConfigFileName is the optional per-repository config overlay
	RepoConfigFileName = ".sggit.toml"

	// ConfigFileName is the user config file inside ConfigDir
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "sggit.log"

	// DefaultRepoDirName is the repository directory proposed by init
	DefaultRepoDirName = "sggit"

	// platformDirSuffix names the per-platform directory created by init
	platformDirSuffix = "_only"

	// settingsCopyName is the settings file name inside the platform directory
	settingsCopyName = "sggit.json"
)

// HomeDir returns the user's home directory, falling back to $HOME.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	if home = os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
}

// ExpandHome expands a leading ~ to the home directory. Paths of the form
// ~user are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := HomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Absolute expands ~ and resolves path against the working directory.
func Absolute(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// SettingsFile returns the location of the per-machine settings file.
func SettingsFile() string {
	if p := os.Getenv(EnvSettingsFile); p != "" {
		return ExpandHome(p)
	}
	home, err := HomeDir()
	if err != nil {
		return SettingsFileName
	}
	return filepath.Join(home, SettingsFileName)
}

// DefaultRepoDir is the repository location init proposes.
func DefaultRepoDir() string {
	home, err := HomeDir()
	if err != nil {
		return DefaultRepoDirName
	}
	return filepath.Join(home, DefaultRepoDirName)
}

// ConfigDir returns the sggit config directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the user config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the sggit state directory. XDG_STATE_HOME is read on
// every call; xdg.StateHome is only filled at start-up.
func StateDir() string {
	if dir := os.Getenv(EnvStateHome); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	if home, err := HomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// MappingFile returns the mapping store path for a repository.
func MappingFile(repoRoot string) string {
	return filepath.Join(repoRoot, MappingFileName)
}

// RepoConfigFile returns the per-repository config overlay path.
func RepoConfigFile(repoRoot string) string {
	return filepath.Join(repoRoot, RepoConfigFileName)
}

// PlatformDir returns the repo path of the directory init creates for a
// platform, e.g. "linux_only".
func PlatformDir(platform string) string {
	return platform + platformDirSuffix
}

// SettingsRepoPath returns the repo path under which init tracks the
// settings file of a platform.
func SettingsRepoPath(platform string) string {
	return PlatformDir(platform) + "/" + settingsCopyName
}

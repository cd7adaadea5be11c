// Package paths centralizes path handling for sggit.
//
// It covers three concerns:
//
//   - well-known locations: the per-machine settings file, the XDG config and
//     state directories, and the fixed files inside the repository
//   - user input normalization: `~` expansion and absolutizing real paths
//   - the repo-path policy: a repo path is relative, slash separated, never
//     `.`, never inside `.git` and never climbs above the repository root
//
// # Environment Variables
//
//   - SGGIT_SETTINGS: override the settings file (default: ~/.sggit.json)
//   - SGGIT_CONFIG_DIR: override the config directory (default: $XDG_CONFIG_HOME/sggit)
//   - XDG_STATE_HOME: base of the log directory (default: ~/.local/state)
//
// # Usage
//
//	rel, err := paths.ValidateRepoPath("nvim/init.lua")
//	full, err := paths.RepoFilePath(repoRoot, rel)
//	real, err := paths.Absolute("~/.config/nvim/init.lua")
package paths

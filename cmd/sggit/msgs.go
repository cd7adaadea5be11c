package sggit

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort      = "Scatter gather git: track files scattered across machines in one repository"
	MsgInitShort      = "Set up this machine and its repository"
	MsgTrackShort     = "Track a file on this platform"
	MsgUntrackShort   = "Stop tracking a file"
	MsgUpdateShort    = "Copy this platform's files into the repository and commit"
	MsgSyncShort      = "Copy repository content out to this platform's files"
	MsgCommitShort    = "Update the repository and commit with a message"
	MsgStatusShort    = "Compare tracked files with their repository copies"
	MsgProxyShort     = "Run a git command inside the repository"
	MsgGenConfigShort = "Print or write the configuration"
	MsgTopicsShort    = "Display available documentation topics"
	MsgTopicsLong     = "Display a list of all available help topics, or one topic by name."
	MsgVersionShort   = "Print version information"
	MsgCompletion     = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text or json (default from output.format)"
	MsgFlagPlatform  = "Platform name for this machine (default: the running OS)"
	MsgFlagRepo      = "Repository location (default: ~/sggit)"
	MsgFlagInitForce = "Overwrite existing settings"
	MsgFlagAll       = "Remove the file for every platform"
	MsgFlagKeepFile  = "Keep the repository copy when the file is no longer tracked"
	MsgFlagDryRun    = "Show decisions without copying"
	MsgFlagMessage   = "Commit subject"
	MsgFlagCommand   = "git command line to run, e.g. \"push origin main\""
	MsgFlagWrite     = "Write the commented defaults to the user config file"
	MsgFlagGenForce  = "Overwrite an existing config file"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrProxyArgs = "give the git command either with -c or after --, not both"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/track-long.txt
	msgTrackLongRaw string
	MsgTrackLong    = strings.TrimSpace(msgTrackLongRaw)

	//go:embed msgs/track-example.txt
	msgTrackExampleRaw string
	MsgTrackExample    = strings.TrimRight(msgTrackExampleRaw, "\n")

	//go:embed msgs/untrack-long.txt
	msgUntrackLongRaw string
	MsgUntrackLong    = strings.TrimSpace(msgUntrackLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/commit-long.txt
	msgCommitLongRaw string
	MsgCommitLong    = strings.TrimSpace(msgCommitLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/proxy-long.txt
	msgProxyLongRaw string
	MsgProxyLong    = strings.TrimSpace(msgProxyLongRaw)

	//go:embed msgs/proxy-example.txt
	msgProxyExampleRaw string
	MsgProxyExample    = strings.TrimRight(msgProxyExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)
)

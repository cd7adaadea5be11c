// Package commands provides the sggit command implementations.
//
// Each command lives in its own subdirectory and returns a result the ui
// renderers consume:
//   - initialize/ - Init: settings, repository and initial commit
//   - track/      - Track: bind a real file on this platform
//   - untrack/    - Untrack: drop a binding or a whole artifact
//   - update/     - Update: copy real files into the repository and commit
//   - sync/       - Sync: push repository content out to real files
//   - commit/     - Commit: update with a user supplied message
//   - status/     - Status: read-only comparison of both copies
//   - proxy/      - Proxy: run git inside the repository
//   - genconfig/  - GenConfig: print or write the configuration
//   - internal/   - Shared loading steps
//
// This file re-exports the command functions so callers need a single
// import.
package commands

import (
	"context"

	commitcmd "github.com/Duckilicious/sggit/pkg/commands/commit"
	"github.com/Duckilicious/sggit/pkg/commands/genconfig"
	"github.com/Duckilicious/sggit/pkg/commands/initialize"
	"github.com/Duckilicious/sggit/pkg/commands/proxy"
	"github.com/Duckilicious/sggit/pkg/commands/status"
	synccmd "github.com/Duckilicious/sggit/pkg/commands/sync"
	"github.com/Duckilicious/sggit/pkg/commands/track"
	"github.com/Duckilicious/sggit/pkg/commands/untrack"
	"github.com/Duckilicious/sggit/pkg/commands/update"
	"github.com/Duckilicious/sggit/pkg/types"
)

// Init writes the machine settings and prepares the repository.
type InitOptions = initialize.InitOptions

func Init(ctx context.Context, opts InitOptions) (*types.CommandResult, error) {
	return initialize.Init(ctx, opts)
}

// Track binds a real file to a repo path on this platform.
type TrackOptions = track.TrackOptions

func Track(ctx context.Context, opts TrackOptions) (*types.CommandResult, error) {
	return track.Track(ctx, opts)
}

// Untrack removes a binding or an artifact.
type UntrackOptions = untrack.UntrackOptions

func Untrack(ctx context.Context, opts UntrackOptions) (*types.CommandResult, error) {
	return untrack.Untrack(ctx, opts)
}

// Update copies bound files into the repository and commits them.
type UpdateOptions = update.UpdateOptions

func Update(ctx context.Context, opts UpdateOptions) (*types.CommandResult, error) {
	return update.Update(ctx, opts)
}

// Sync copies repository content out where the sync policy decides so.
type SyncOptions = synccmd.SyncOptions

func Sync(ctx context.Context, opts SyncOptions) (*types.CommandResult, error) {
	return synccmd.Sync(ctx, opts)
}

// Commit updates the repository and commits with a user message.
type CommitOptions = commitcmd.CommitOptions

func Commit(ctx context.Context, opts CommitOptions) (*types.CommandResult, error) {
	return commitcmd.Commit(ctx, opts)
}

// Status compares bound files with their repository copies.
type StatusOptions = status.StatusOptions

func Status(ctx context.Context, opts StatusOptions) (*types.CommandResult, error) {
	return status.Status(ctx, opts)
}

// Proxy runs a git command in the repository.
type ProxyOptions = proxy.ProxyOptions

func Proxy(ctx context.Context, opts ProxyOptions) (*types.CommandResult, error) {
	return proxy.Proxy(ctx, opts)
}

// GenConfig prints or writes the configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}

// TerminalPrompter asks init's questions on the terminal.
type TerminalPrompter = initialize.TerminalPrompter

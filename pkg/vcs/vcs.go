// Package vcs is the version-control collaborator: initialize or open a
// repository, stage paths, commit, and report working tree status. The only
// backend shells out to git.
package vcs

import (
	"context"
	"io"
)

// StatusEntry is one line of porcelain status output.
type StatusEntry struct {
	// Code is the two letter XY status, e.g. " M" or "??"
	Code string `json:"code"`
	Path string `json:"path"`
}

// String formats the entry the way git status --porcelain does.
func (e StatusEntry) String() string {
	return e.Code + " " + e.Path
}

// Repository is an opened working tree.
type Repository interface {
	Root() string
	Stage(ctx context.Context, paths []string) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) (string, error)
	Status(ctx context.Context) ([]StatusEntry, error)
	Run(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

// Backend creates or opens repositories.
type Backend interface {
	Init(ctx context.Context, path string) (Repository, error)
	Open(ctx context.Context, path string) (Repository, error)
}

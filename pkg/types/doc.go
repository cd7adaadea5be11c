// Package types holds the small set of types shared across sggit packages:
// the filesystem abstraction, the (real path, repo path) pair that flows
// through the resolver, copy engine and sync procedure, and the command
// result model consumed by the renderers.
package types

// Package testutil provides test environments for sggit packages.
//
// Key components:
//   - TestEnvironment: isolated home, repository and external directories
//     with HOME, XDG_* and SGGIT_SETTINGS pointed into a temp dir
//   - EnvMemoryOnly: the same layout on an afero in-memory filesystem for
//     store, copier and syncer tests
//   - RequireGit / SetGitIdentity: git prerequisites for tests that shell out
//
// Each test gets its own environment; nothing is shared between tests.
package testutil

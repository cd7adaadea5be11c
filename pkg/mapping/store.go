package mapping

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/types"
)

// Binding is the real path of an artifact on one platform.
type Binding struct {
	Name       platform.Platform `json:"name"`
	Path       string            `json:"path"`
	LastSynced *time.Time        `json:"last_synced,omitempty"`
}

// Artifact is one tracked file.
type Artifact struct {
	RepoPath  string    `json:"repo_path"`
	Platforms []Binding `json:"platforms"`
}

// Binding returns the binding for p, if any.
func (a *Artifact) Binding(p platform.Platform) (*Binding, bool) {
	for i := range a.Platforms {
		if a.Platforms[i].Name == p {
			return &a.Platforms[i], true
		}
	}
	return nil, false
}

// Store holds every tracked artifact in source order.
type Store struct {
	Files []Artifact `json:"files"`
}

// New returns an empty store for a fresh repository.
func New() *Store {
	return &Store{Files: []Artifact{}}
}

// Load reads and validates the mapping file of a repository. A missing file
// yields errors.ErrConfigNotFound; callers decide what that means.
func Load(fsys types.FS, repoRoot string) (*Store, error) {
	logger := logging.GetLogger("mapping")
	path := paths.MappingFile(repoRoot)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigNotFound, "mapping file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read mapping file %s", path).
			WithDetail("path", path)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "mapping file %s is malformed", path).
			WithDetail("path", path)
	}
	if store.Files == nil {
		store.Files = []Artifact{}
	}

	if err := store.normalize(); err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Int("count", len(store.Files)).Msg("Loaded mapping store")
	return &store, nil
}

// normalize validates invariants on a freshly decoded store and rewrites
// repo paths and platform names into their canonical form.
func (s *Store) normalize() error {
	seenRepo := make(map[string]bool, len(s.Files))

	for i := range s.Files {
		a := &s.Files[i]

		repoPath, err := paths.ValidateRepoPath(a.RepoPath)
		if err != nil {
			return err
		}
		if seenRepo[repoPath] {
			return errors.Newf(errors.ErrConfigInvalid, "repo path %q is listed more than once", repoPath).
				WithDetail("repo_path", repoPath)
		}
		seenRepo[repoPath] = true
		a.RepoPath = repoPath

		seenPlatform := make(map[platform.Platform]bool, len(a.Platforms))
		for j := range a.Platforms {
			b := &a.Platforms[j]
			p, err := platform.Parse(string(b.Name))
			if err != nil {
				return errors.Wrapf(err, errors.ErrConfigInvalid, "artifact %q has an invalid platform", repoPath).
					WithDetail("repo_path", repoPath)
			}
			if seenPlatform[p] {
				return errors.Newf(errors.ErrConfigInvalid,
					"artifact %q has more than one binding for platform %q", repoPath, p).
					WithDetail("repo_path", repoPath).
					WithDetail("platform", p.String())
			}
			seenPlatform[p] = true
			b.Name = p

			if strings.TrimSpace(b.Path) == "" {
				return errors.Newf(errors.ErrConfigInvalid,
					"artifact %q has an empty path for platform %q", repoPath, p).
					WithDetail("repo_path", repoPath)
			}
		}
	}
	return nil
}

// Save rewrites the mapping file atomically.
func (s *Store) Save(fsys types.FS, repoRoot string) error {
	path := paths.MappingFile(repoRoot)

	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(fsys, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write mapping file %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("mapping")
	logger.Debug().Str("path", path).Int("count", len(s.Files)).Msg("Saved mapping store")
	return nil
}

// Encode returns the indented JSON form of the store.
func (s *Store) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode mapping store")
	}
	return append(data, '\n'), nil
}

func (s *Store) index(repoPath string) int {
	for i := range s.Files {
		if s.Files[i].RepoPath == repoPath {
			return i
		}
	}
	return -1
}

// AddBinding records realPath as the location of repoPath on p. The repo
// path is validated before anything else happens. Adding a second binding
// for the same platform is a conflict.
func (s *Store) AddBinding(repoPath string, p platform.Platform, realPath string) error {
	cleaned, err := paths.ValidateRepoPath(repoPath)
	if err != nil {
		return err
	}
	if p == "" {
		return errors.New(errors.ErrInvalidInput, "platform cannot be empty")
	}
	if strings.TrimSpace(realPath) == "" {
		return errors.New(errors.ErrInvalidInput, "real path cannot be empty")
	}

	idx := s.index(cleaned)
	if idx < 0 {
		s.Files = append(s.Files, Artifact{
			RepoPath:  cleaned,
			Platforms: []Binding{{Name: p, Path: realPath}},
		})
		return nil
	}

	artifact := &s.Files[idx]
	if existing, ok := artifact.Binding(p); ok {
		return errors.Newf(errors.ErrAlreadyExists,
			"%s is already tracked on %s (as %s)", cleaned, p, existing.Path).
			WithDetail("repo_path", cleaned).
			WithDetail("platform", p.String())
	}
	artifact.Platforms = append(artifact.Platforms, Binding{Name: p, Path: realPath})
	return nil
}

// RemoveBinding removes the binding of repoPath for p. When it was the last
// binding the artifact is dropped as well and artifactRemoved is true.
func (s *Store) RemoveBinding(repoPath string, p platform.Platform) (artifactRemoved bool, err error) {
	idx := s.lookup(repoPath)
	if idx < 0 {
		return false, notTracked(repoPath)
	}

	artifact := &s.Files[idx]
	kept := artifact.Platforms[:0]
	found := false
	for _, b := range artifact.Platforms {
		if b.Name == p {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return false, errors.Newf(errors.ErrNotFound, "%s has no binding for platform %s", artifact.RepoPath, p).
			WithDetail("repo_path", artifact.RepoPath).
			WithDetail("platform", p.String())
	}
	artifact.Platforms = kept

	if len(artifact.Platforms) == 0 {
		s.Files = append(s.Files[:idx], s.Files[idx+1:]...)
		return true, nil
	}
	return false, nil
}

// RemoveArtifact drops the whole entry for repoPath.
func (s *Store) RemoveArtifact(repoPath string) error {
	idx := s.lookup(repoPath)
	if idx < 0 {
		return notTracked(repoPath)
	}
	s.Files = append(s.Files[:idx], s.Files[idx+1:]...)
	return nil
}

// Find returns a copy of the artifact stored under repoPath.
func (s *Store) Find(repoPath string) (Artifact, bool) {
	idx := s.lookup(repoPath)
	if idx < 0 {
		return Artifact{}, false
	}
	return cloneArtifact(s.Files[idx]), true
}

// Artifacts returns a copy of every artifact in source order.
func (s *Store) Artifacts() []Artifact {
	out := make([]Artifact, len(s.Files))
	for i := range s.Files {
		out[i] = cloneArtifact(s.Files[i])
	}
	return out
}

// Len returns the number of tracked artifacts.
func (s *Store) Len() int {
	return len(s.Files)
}

// MarkSynced stamps the last_synced time of a binding.
func (s *Store) MarkSynced(repoPath string, p platform.Platform, at time.Time) error {
	idx := s.lookup(repoPath)
	if idx < 0 {
		return notTracked(repoPath)
	}
	b, ok := s.Files[idx].Binding(p)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "%s has no binding for platform %s", repoPath, p)
	}
	stamp := at.UTC().Truncate(time.Second)
	b.LastSynced = &stamp
	return nil
}

// Entries implements platform.Source.
func (s *Store) Entries() []platform.Entry {
	out := make([]platform.Entry, len(s.Files))
	for i, a := range s.Files {
		bindings := make(map[platform.Platform]string, len(a.Platforms))
		for _, b := range a.Platforms {
			bindings[b.Name] = b.Path
		}
		out[i] = platform.Entry{RepoPath: a.RepoPath, Bindings: bindings}
	}
	return out
}

// lookup normalizes repoPath before searching; invalid paths are never found.
func (s *Store) lookup(repoPath string) int {
	cleaned, err := paths.ValidateRepoPath(repoPath)
	if err != nil {
		return -1
	}
	return s.index(cleaned)
}

func cloneArtifact(a Artifact) Artifact {
	c := Artifact{RepoPath: a.RepoPath, Platforms: make([]Binding, len(a.Platforms))}
	copy(c.Platforms, a.Platforms)
	return c
}

func notTracked(repoPath string) error {
	return errors.Newf(errors.ErrNotFound, "%s is not tracked", repoPath).
		WithDetail("repo_path", repoPath)
}

package platform

import (
	"sort"

	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/types"
)

// Entry is one artifact as seen by the resolver: its repo path and the real
// path per platform.
type Entry struct {
	RepoPath string
	Bindings map[Platform]string
}

// Source is implemented by mapping.Store. Entries must be in source order.
type Source interface {
	Entries() []Entry
}

// Resolve returns the (real path, repo path) pairs bound to current, in
// source order. Artifacts without a binding for current are skipped.
func Resolve(src Source, current Platform) []types.Pair {
	logger := logging.GetLogger("platform.resolve")

	var pairs []types.Pair
	for _, entry := range src.Entries() {
		realPath, ok := entry.Bindings[current]
		if !ok {
			logger.Debug().
				Str("repo_path", entry.RepoPath).
				Str("platform", current.String()).
				Msg("No binding for platform, skipping")
			continue
		}
		pairs = append(pairs, types.Pair{RealPath: realPath, RepoPath: entry.RepoPath})
	}

	logger.Debug().
		Str("platform", current.String()).
		Int("count", len(pairs)).
		Msg("Resolved pairs")
	return pairs
}

// Unbound returns the repo paths of artifacts with no binding for current.
func Unbound(src Source, current Platform) []string {
	var out []string
	for _, entry := range src.Entries() {
		if _, ok := entry.Bindings[current]; !ok {
			out = append(out, entry.RepoPath)
		}
	}
	return out
}

// Platforms returns every platform referenced by the store, in order of
// first appearance.
func Platforms(src Source) []Platform {
	seen := make(map[Platform]bool)
	var out []Platform
	for _, entry := range src.Entries() {
		for _, p := range sortedKeys(entry.Bindings) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func sortedKeys(m map[Platform]string) []Platform {
	keys := make([]Platform, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Package syncer implements the bidirectional sync decision: for every pair
// it compares the repo copy with the external copy and decides whether the
// repo content is pushed out to the real path. Sync never writes into the
// repository.
package syncer

import (
	"sort"
	"strings"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
)

// FileState is what the policy knows about one side of a pair.
type FileState struct {
	Exists  bool
	ModTime time.Time
}

// Decision is the action taken for one pair.
type Decision int

const (
	// Skip leaves both copies untouched.
	Skip Decision = iota
	// CopyToExternal copies the repo file over the real path.
	CopyToExternal
)

// String returns the string representation of the decision
func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case CopyToExternal:
		return "copy-to-external"
	default:
		return "unknown"
	}
}

// Verdict is a decision plus a human readable reason.
type Verdict struct {
	Decision Decision
	Reason   string
}

// Policy decides what happens to one pair given both file states.
type Policy func(repo, external FileState) Verdict

// PolicyExternalNewerWins names ExternalNewerWins in configuration.
const PolicyExternalNewerWins = "external-newer-wins"

var policies = map[string]Policy{
	PolicyExternalNewerWins: ExternalNewerWins,
}

// ExternalNewerWins copies the repo file out when the external copy is
// missing, or when the external modification time is strictly after the
// repo's. Equal times never copy. A pair without a repo copy is skipped.
func ExternalNewerWins(repo, external FileState) Verdict {
	switch {
	case !repo.Exists:
		return Verdict{Decision: Skip, Reason: "missing in repo"}
	case !external.Exists:
		return Verdict{Decision: CopyToExternal, Reason: "missing externally"}
	case external.ModTime.After(repo.ModTime):
		return Verdict{Decision: CopyToExternal, Reason: "external is newer"}
	case external.ModTime.Equal(repo.ModTime):
		return Verdict{Decision: Skip, Reason: "same modification time"}
	default:
		return Verdict{Decision: Skip, Reason: "external is not newer"}
	}
}

// PolicyByName looks up a registered policy.
func PolicyByName(name string) (Policy, error) {
	if p, ok := policies[strings.TrimSpace(name)]; ok {
		return p, nil
	}
	return nil, errors.Newf(errors.ErrConfigInvalid,
		"unknown sync policy %q (available: %s)", name, strings.Join(PolicyNames(), ", ")).
		WithDetail("policy", name)
}

// PolicyNames lists registered policy names, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

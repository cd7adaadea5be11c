package types

import "time"

// Direction selects which side of a Pair is the copy source.
type Direction int

const (
	// ToRepo copies the real (external) file into the repository.
	ToRepo Direction = iota
	// FromRepo copies the repository file out to its real path.
	FromRepo
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case ToRepo:
		return "to-repo"
	case FromRepo:
		return "from-repo"
	default:
		return "unknown"
	}
}

// Pair associates the real path of an artifact on the current platform with
// its location inside the repository. RepoPath is relative, slash separated.
type Pair struct {
	RealPath string `json:"real_path"`
	RepoPath string `json:"repo_path"`
}

// CopiedFile is a pair the copy engine wrote, with the modification time of
// the file it was copied from.
type CopiedFile struct {
	Pair
	SourceModTime time.Time `json:"source_mod_time"`
}

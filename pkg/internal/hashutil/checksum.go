// Package hashutil computes content checksums used to compare the repo and
// external copies of a tracked file.
package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/Duckilicious/sggit/pkg/types"
)

// CalculateFileChecksum calculates the SHA256 checksum of a file
func CalculateFileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data)), nil
}

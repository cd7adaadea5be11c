// Package report turns command results into the words every renderer
// shares: per-file status labels, the summary line and the commit line.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Duckilicious/sggit/pkg/types"
)

// Tone groups statuses for styling.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneAttention
	ToneBad
)

var tones = map[types.FileStatus]Tone{
	types.FileCopied:          ToneGood,
	types.FileTracked:         ToneGood,
	types.FileRemoved:         ToneGood,
	types.FileInSync:          ToneGood,
	types.FileFailed:          ToneBad,
	types.FileMissingRepo:     ToneBad,
	types.FilePlanned:         ToneAttention,
	types.FileExternalNewer:   ToneAttention,
	types.FileRepoNewer:       ToneAttention,
	types.FileMissingExternal: ToneAttention,
}

// ToneOf returns the tone of a file status.
func ToneOf(status types.FileStatus) Tone {
	return tones[status]
}

// Label is the status word shown next to a file.
func Label(status types.FileStatus) string {
	return string(status)
}

// Summary counts the files per status, e.g. "2 copied, 1 failed".
func Summary(result *types.CommandResult) string {
	if len(result.Files) == 0 {
		return "no files"
	}
	counts := map[types.FileStatus]int{}
	var order []types.FileStatus
	for _, f := range result.Files {
		if counts[f.Status] == 0 {
			order = append(order, f.Status)
		}
		counts[f.Status]++
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i] < order[j] })

	parts := make([]string, len(order))
	for i, s := range order {
		parts[i] = fmt.Sprintf("%d %s", counts[s], s)
	}
	return strings.Join(parts, ", ")
}

// CommitLine describes the commit outcome, or "" when there is none.
func CommitLine(c *types.CommitSummary) string {
	if c == nil {
		return ""
	}
	switch c.Status {
	case types.CommitCreated:
		id := c.ID
		if len(id) > 12 {
			id = id[:12]
		}
		return fmt.Sprintf("committed %s (%d file(s))", id, len(c.Files))
	case types.CommitNoChanges:
		return "nothing changed, no commit"
	default:
		return "nothing to commit"
	}
}

// Header is the first line of a command result.
func Header(result *types.CommandResult) string {
	var b strings.Builder
	b.WriteString("sggit ")
	b.WriteString(result.Command)
	if result.Platform != "" {
		b.WriteString(" on ")
		b.WriteString(result.Platform)
	}
	if result.DryRun {
		b.WriteString(" (dry run)")
	}
	return b.String()
}

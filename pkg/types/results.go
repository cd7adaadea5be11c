package types

import "time"

// FileStatus describes what happened to (or what state is observed for) a
// single tracked file during a command.
type FileStatus string

const (
	FileCopied   FileStatus = "copied"
	FileSkipped  FileStatus = "skipped"
	FileFailed   FileStatus = "failed"
	FileTracked  FileStatus = "tracked"
	FileRemoved  FileStatus = "removed"
	FilePlanned  FileStatus = "planned"
	FileNotBound FileStatus = "not-bound"

	// status command
	FileInSync          FileStatus = "in-sync"
	FileExternalNewer   FileStatus = "external-newer"
	FileRepoNewer       FileStatus = "repo-newer"
	FileMissingExternal FileStatus = "missing-external"
	FileMissingRepo     FileStatus = "missing-repo"
)

// FileReport is one line of a command result.
type FileReport struct {
	RepoPath string     `json:"repo_path"`
	RealPath string     `json:"real_path,omitempty"`
	Status   FileStatus `json:"status"`
	Detail   string     `json:"detail,omitempty"`
}

// CommitStatus is the outcome of a commit batch.
type CommitStatus string

const (
	// CommitCreated means a commit was recorded.
	CommitCreated CommitStatus = "committed"
	// CommitNothingToDo means the batch was empty and the VCS was not touched.
	CommitNothingToDo CommitStatus = "nothing-to-do"
	// CommitNoChanges means paths were staged but their content was unchanged.
	CommitNoChanges CommitStatus = "no-changes"
)

// CommitSummary describes what the commit batcher did.
type CommitSummary struct {
	Status  CommitStatus `json:"status"`
	ID      string       `json:"id,omitempty"`
	Message string       `json:"message,omitempty"`
	Files   []string     `json:"files,omitempty"`
}

// CommandResult is the common result shape returned by every command and
// consumed by the ui renderers.
type CommandResult struct {
	Command   string         `json:"command"`
	Platform  string         `json:"platform,omitempty"`
	RepoRoot  string         `json:"repo_root,omitempty"`
	Message   string         `json:"message,omitempty"`
	Files     []FileReport   `json:"files"`
	Commit    *CommitSummary `json:"commit,omitempty"`
	VCSStatus []string       `json:"vcs_status,omitempty"`
	DryRun    bool           `json:"dry_run,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewCommandResult creates an empty result for the named command.
func NewCommandResult(command string) *CommandResult {
	return &CommandResult{
		Command:   command,
		Files:     []FileReport{},
		Timestamp: time.Now(),
	}
}

// Add appends a file report.
func (r *CommandResult) Add(report FileReport) {
	r.Files = append(r.Files, report)
}

// Count returns how many file reports carry the given status.
func (r *CommandResult) Count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// GenConfigResult is the result of the genconfig command.
type GenConfigResult struct {
	ConfigContent string   `json:"config_content"`
	FilesWritten  []string `json:"files_written"`
}

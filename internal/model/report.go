package model

// Outcome describes how a transformer run ended.
type Outcome string

const (
	// OutcomeDone means every file was processed.
	OutcomeDone Outcome = "done"
	// OutcomeWarning means the run was skipped for a non-fatal reason.
	OutcomeWarning Outcome = "warning"
	// OutcomeAborted means the user rejected a change.
	OutcomeAborted Outcome = "aborted"
)

// Result is returned by a transformer run.
type Result struct {
	Name    string       `json:"name"`
	Outcome Outcome      `json:"outcome"`
	Message string       `json:"message,omitempty"`
	Files   []FileReport `json:"files"`
	// Sources holds the in-memory sources with their final contents.
	Sources []*Source `json:"-"`
}

// FileReport summarizes what happened to a single file.
type FileReport struct {
	Path  Path       `json:"path"`
	Type  SourceType `json:"type"`
	Steps int        `json:"steps"` // number of plugin calls that changed the file
	Saved bool       `json:"saved"` // true when the file was written back to disk
}

// Diff is one rendered transformation step of a file.
type Diff struct {
	Step    int
	Title   string
	Unified string
}

// TSConfig holds the fields of a tsconfig.json the transformer relies on.
type TSConfig struct {
	Path    Path
	Dir     Path
	Include []string
	Exclude []string
	RootDir Path
	OutDir  Path
}

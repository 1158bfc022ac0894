package model

// OperationKind identifies whether a session drives a build or a run command.
type OperationKind string

const (
	OpBuild OperationKind = "build"
	OpRun   OperationKind = "run"
)

// ProblemCategory classifies a failure. Assigned by the reasoning service;
// used for reporting only.
type ProblemCategory string

const (
	ProblemPathNotFound      ProblemCategory = "path_not_found"
	ProblemPermissionDenied  ProblemCategory = "permission_denied"
	ProblemMissingDependency ProblemCategory = "missing_dependency"
	ProblemImageNotFound     ProblemCategory = "image_not_found"
	ProblemInvalidSyntax     ProblemCategory = "invalid_syntax"
	ProblemBuildContextError ProblemCategory = "build_context_error"
	ProblemUnknown           ProblemCategory = "unknown"
)

// Known reports whether c is one of the defined categories.
func (c ProblemCategory) Known() bool {
	switch c {
	case ProblemPathNotFound, ProblemPermissionDenied, ProblemMissingDependency,
		ProblemImageNotFound, ProblemInvalidSyntax, ProblemBuildContextError,
		ProblemUnknown:
		return true
	}
	return false
}

// ExecutionResult is the outcome of running one external command.
// Immutable once produced.
type ExecutionResult struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
	LogPath  string `json:"log_path,omitempty"`
}

func (r *ExecutionResult) Success() bool {
	return r.ExitCode == 0
}

// FixSuggestion is the reasoning service's structured proposal.
// NewContent, when non-empty, is a complete replacement for the target
// file, never a diff fragment.
type FixSuggestion struct {
	Category       ProblemCategory `json:"category"`
	Reason         string          `json:"reason"`
	NewContent     string          `json:"new_content"`
	ChangesSummary string          `json:"changes_summary"`
	Confidence     float64         `json:"confidence"`
}

// Attempt is one execution-then-maybe-fix cycle within a session.
// Index is 1-based. Suggestion is nil when the attempt succeeded or the
// fixer was disabled.
type Attempt struct {
	Index      int              `json:"index"`
	Result     *ExecutionResult `json:"result,omitempty"`
	Suggestion *FixSuggestion   `json:"suggestion,omitempty"`
	Applied    bool             `json:"applied"`
}

package prompts

import (
	"fmt"
	"strings"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

// BuildFixPrompt embeds the failure log, the current build-descriptor
// contents and the operation kind into a prompt that demands a strict
// JSON reply matching the FixSuggestion shape.
func BuildFixPrompt(failureText, fileContents string, kind model.OperationKind, previousAttempts int) string {
	var retryNote string
	if previousAttempts > 0 {
		retryNote = fmt.Sprintf("\nPrevious fix attempts: %d. The earlier fixes did not resolve the failure, so reconsider the root cause.\n", previousAttempts)
	}

	return fmt.Sprintf(`You are an expert Docker and DevOps engineer specialized in diagnosing and fixing Docker build and runtime errors.

Operation: docker %s
%s
Current Dockerfile:
%s
%s
%s

Error log:
%s
%s
%s

Analyze the error and provide a fix that:
1. Addresses the root cause, not just symptoms
2. Maintains the original functionality and intent of the Dockerfile
3. Follows Docker best practices
4. Is minimal - only change what's necessary

Respond with valid JSON matching this exact structure and nothing else:
{
  "category": "path_not_found|permission_denied|missing_dependency|image_not_found|invalid_syntax|build_context_error|unknown",
  "reason": "Detailed explanation of the error and why it occurred",
  "new_content": "Complete new content of the Dockerfile",
  "changes_summary": "Brief summary of changes made",
  "confidence": 0.85
}

new_content must be the entire replacement file, never a diff or fragment.`,
		kind, retryNote,
		fence("dockerfile"), strings.TrimRight(fileContents, "\n"), fence(""),
		fence(""), strings.TrimRight(failureText, "\n"), fence(""))
}

func fence(lang string) string {
	return "```" + lang
}

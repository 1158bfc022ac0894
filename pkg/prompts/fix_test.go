package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

func TestBuildFixPromptEmbedsAllInputs(t *testing.T) {
	prompt := BuildFixPrompt("COPY failed: no such file", "FROM scratch\nCOPY a b\n", model.OpBuild, 0)

	assert.Contains(t, prompt, "docker build")
	assert.Contains(t, prompt, "COPY failed: no such file")
	assert.Contains(t, prompt, "FROM scratch")
	assert.Contains(t, prompt, `"new_content"`)
	assert.Contains(t, prompt, "valid JSON")
	assert.NotContains(t, prompt, "Previous fix attempts")
}

func TestBuildFixPromptOperationKind(t *testing.T) {
	prompt := BuildFixPrompt("segfault", "FROM scratch\n", model.OpRun, 0)
	assert.Contains(t, prompt, "docker run")
}

func TestBuildFixPromptMentionsRetries(t *testing.T) {
	prompt := BuildFixPrompt("still broken", "FROM scratch\n", model.OpBuild, 2)
	assert.Contains(t, prompt, "Previous fix attempts: 2")
}

func TestBuildFixPromptListsAllCategories(t *testing.T) {
	prompt := BuildFixPrompt("boom", "FROM scratch\n", model.OpBuild, 0)

	for _, category := range []model.ProblemCategory{
		model.ProblemPathNotFound,
		model.ProblemPermissionDenied,
		model.ProblemMissingDependency,
		model.ProblemImageNotFound,
		model.ProblemInvalidSyntax,
		model.ProblemBuildContextError,
		model.ProblemUnknown,
	} {
		assert.True(t, strings.Contains(prompt, string(category)), "prompt should offer category %s", category)
	}
}

package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

func TestDisplaySuggestionFormats(t *testing.T) {
	suggestion := &model.FixSuggestion{
		Category:       model.ProblemInvalidSyntax,
		Reason:         "RUN line has a trailing backslash",
		NewContent:     "FROM alpine\nRUN echo ok\n",
		ChangesSummary: "removed the dangling continuation",
		Confidence:     0.75,
	}

	for _, format := range []string{"human", "json", "yaml", ""} {
		assert.NoError(t, DisplaySuggestion(suggestion, format), "format %q", format)
	}
}

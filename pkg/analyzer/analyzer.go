// Package analyzer is the suggestion client: it turns a failure log and
// the current build-descriptor contents into a structured fix proposal.
// Pure request/response - no process or file side effects, and no retry
// of its own.
package analyzer

import (
	"context"
	"time"

	"github.com/Dilrevx/fix-compile/pkg/llm"
	"github.com/Dilrevx/fix-compile/pkg/model"
	"github.com/Dilrevx/fix-compile/pkg/parser"
	"github.com/Dilrevx/fix-compile/pkg/prompts"
)

type Analyzer struct {
	llm llm.LLM
}

func New(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l}
}

// NewFromEnv builds an analyzer on whichever provider the environment
// configures, honoring optional provider/model overrides.
func NewFromEnv(provider, modelName string, timeout time.Duration) (*Analyzer, error) {
	client, err := llm.CreateFromEnv(provider, modelName, timeout)
	if err != nil {
		return nil, err
	}
	return &Analyzer{llm: client}, nil
}

// Suggest sends the failure text and file contents to the reasoning
// service and returns its structured proposal. Errors are either a
// *llm.ServiceError (transport) or a *parser.ParseError (malformed
// reply); callers choose messaging per kind, but both end the session.
func (a *Analyzer) Suggest(ctx context.Context, failureText, fileContents string, kind model.OperationKind, previousAttempts int) (*model.FixSuggestion, error) {
	prompt := prompts.BuildFixPrompt(failureText, fileContents, kind, previousAttempts)

	raw, err := a.llm.Chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parser.ParseFixSuggestion(raw)
}

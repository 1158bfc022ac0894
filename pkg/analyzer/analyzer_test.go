package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dilrevx/fix-compile/pkg/llm"
	"github.com/Dilrevx/fix-compile/pkg/model"
	"github.com/Dilrevx/fix-compile/pkg/parser"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Chat(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

const goodReply = `{
  "category": "image_not_found",
  "reason": "the base image tag does not exist",
  "new_content": "FROM ubuntu:22.04\n",
  "changes_summary": "pinned a published base image tag",
  "confidence": 0.85
}`

func TestSuggestReturnsParsedSuggestion(t *testing.T) {
	fake := &fakeLLM{reply: goodReply}
	a := New(fake)

	suggestion, err := a.Suggest(context.Background(), "manifest unknown", "FROM ubuntu:99.99\n", model.OpBuild, 0)
	require.NoError(t, err)

	assert.Equal(t, model.ProblemImageNotFound, suggestion.Category)
	assert.Equal(t, 0.85, suggestion.Confidence)
}

func TestSuggestEmbedsInputsInPrompt(t *testing.T) {
	fake := &fakeLLM{reply: goodReply}
	a := New(fake)

	_, err := a.Suggest(context.Background(), "manifest unknown", "FROM ubuntu:99.99\n", model.OpBuild, 2)
	require.NoError(t, err)

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "manifest unknown")
	assert.Contains(t, prompt, "FROM ubuntu:99.99")
	assert.Contains(t, prompt, "docker build")
	assert.Contains(t, prompt, "Previous fix attempts: 2")
}

func TestSuggestPropagatesServiceError(t *testing.T) {
	fake := &fakeLLM{err: &llm.ServiceError{Provider: "OpenAI", Status: 429, Message: "rate limited"}}
	a := New(fake)

	_, err := a.Suggest(context.Background(), "boom", "FROM scratch\n", model.OpRun, 0)
	require.Error(t, err)

	var serviceErr *llm.ServiceError
	assert.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, 429, serviceErr.Status)
}

func TestSuggestMalformedReplyIsParseError(t *testing.T) {
	fake := &fakeLLM{reply: "Sure! Just change the base image."}
	a := New(fake)

	_, err := a.Suggest(context.Background(), "boom", "FROM scratch\n", model.OpBuild, 0)
	require.Error(t, err)

	var parseErr *parser.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

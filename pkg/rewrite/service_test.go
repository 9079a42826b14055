package rewrite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/llm"
)

type fakeModel struct {
	reply llm.Completion
	err   error
	got   llm.Request
}

func (f *fakeModel) Model() string { return "openai/gpt-3.5-turbo" }

func (f *fakeModel) Complete(_ context.Context, req llm.Request) (llm.Completion, error) {
	f.got = req
	return f.reply, f.err
}

func TestRewriteSuccess(t *testing.T) {
	m := &fakeModel{reply: llm.Completion{Content: "\n Delivered a 4 km bridge. \n", Model: "openai/gpt-4", Usage: llm.Usage{TotalTokens: 90}}}
	s := New(m, nil)

	res := s.Rewrite(context.Background(), Request{Original: "Built a bridge", Context: "Bridge retrofit", Model: "openai/gpt-4"})
	require.True(t, res.Success)
	assert.Equal(t, "Delivered a 4 km bridge.", res.Content)
	assert.Equal(t, "Built a bridge", res.Original)
	assert.Equal(t, "openai/gpt-4", res.Model)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 90, res.Usage.TotalTokens)

	assert.Equal(t, "openai/gpt-4", m.got.Model)
	assert.Equal(t, 500, m.got.MaxTokens)
	assert.InDelta(t, 0.7, m.got.Temperature, 0.0001)
	assert.Equal(t, systemPrompt, m.got.System)
	assert.Contains(t, m.got.User, "Proposal Context: Bridge retrofit")
	assert.Contains(t, m.got.User, "Original Experience Description: Built a bridge")
}

func TestRewriteFailureEchoesOriginal(t *testing.T) {
	s := New(&fakeModel{err: errors.New("openrouter http 502: bad gateway")}, nil)
	res := s.Rewrite(context.Background(), Request{Original: "Built a bridge", Context: "x"})
	assert.False(t, res.Success)
	assert.False(t, res.Unavailable)
	assert.Equal(t, "Built a bridge", res.Content)
	assert.Contains(t, res.Error, "502")
}

func TestRewriteEmptyReplyIsFailure(t *testing.T) {
	s := New(&fakeModel{reply: llm.Completion{Content: "   "}}, nil)
	res := s.Rewrite(context.Background(), Request{Original: "orig"})
	assert.False(t, res.Success)
	assert.Equal(t, "orig", res.Content)
}

func TestRewriteNotConfigured(t *testing.T) {
	s := New(nil, nil)
	res := s.Rewrite(context.Background(), Request{Original: "orig"})
	assert.False(t, res.Success)
	assert.True(t, res.Unavailable)
	assert.Equal(t, NotConfigured, res.Error)
	assert.Equal(t, "orig", res.Content)

	st := s.Status()
	assert.False(t, st.Available)
	assert.False(t, st.Configured)
	assert.Equal(t, "OpenRouter", st.Provider)
}

func TestPromptInstruction(t *testing.T) {
	p := Prompt("orig", "ctx", "  Focus on safety ")
	assert.Contains(t, p, "\n\nAdditional Instructions: Focus on safety\n\nRewritten Description:")

	p = Prompt("orig", "ctx", "")
	assert.NotContains(t, p, "Additional Instructions")
	assert.Contains(t, p, "5. Resume is a company resume, not a personal resume.\n\nRewritten Description:")
}

func TestStatusConfigured(t *testing.T) {
	st := New(&fakeModel{}, nil).Status()
	assert.True(t, st.Available)
	assert.Equal(t, "openai/gpt-3.5-turbo", st.Model)
	assert.Len(t, Models, 8)
}

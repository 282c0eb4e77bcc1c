package service

import (
	"context"
	"testing"

	"analyst-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name entity.ToolName
}

func (t *stubTool) Name() entity.ToolName              { return t.name }
func (t *stubTool) Description() string                { return "stub " + t.name.String() }
func (t *stubTool) Strict() bool                       { return true }
func (t *stubTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (t *stubTool) Execute(context.Context, string) (string, error) {
	return "", nil
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolScrapeWebsite})
	r.Register(&stubTool{name: entity.ToolGetRelevantData})
	r.Register(&stubTool{name: entity.ToolAnswerQuestions})

	defs := r.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "scrape_website", defs[0].Name)
	assert.Equal(t, "get_relevant_data", defs[1].Name)
	assert.Equal(t, "answer_questions", defs[2].Name)

	// Definitions is stable across calls.
	assert.Equal(t, defs, r.Definitions())
}

func TestRegistry_Get(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolScrapeWebsite})

	_, ok := r.Get(entity.ToolScrapeWebsite)
	assert.True(t, ok)

	_, ok = r.Get("bogus")
	assert.False(t, ok)
}

func TestRegistry_ReRegisterReplacesWithoutDuplicating(t *testing.T) {
	r := NewToolRegistry()
	first := &stubTool{name: entity.ToolScrapeWebsite}
	second := &stubTool{name: entity.ToolScrapeWebsite}
	r.Register(first)
	r.Register(second)

	assert.Len(t, r.All(), 1)
	got, ok := r.Get(entity.ToolScrapeWebsite)
	require.True(t, ok)
	assert.Same(t, second, got)
}

package service

import (
	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl keeps registration order so Definitions() produces the
// same tool list on every chat turn of every run.
type ToolRegistryImpl struct {
	order []entity.ToolName
	tools map[entity.ToolName]output.ToolPort
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name().String(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
			Strict:      tool.Strict(),
		})
	}
	return result
}

// Package tools wires the intake tools the LLM can call.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/saikrishna2003/automated-pr-chatbot/llm"
)

// ExecutorFunc defines a server-side tool executor.
type ExecutorFunc func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Definition describes a tool for LLM binding and for GET /tools.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

type entry struct {
	def  Definition
	exec ExecutorFunc
}

// Registry stores tool executors keyed by tool name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a new tool.
func (r *Registry) Register(def Definition, exec ExecutorFunc) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if exec == nil {
		return fmt.Errorf("executor is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[def.Name]; exists {
		return fmt.Errorf("executor already registered for %s", def.Name)
	}
	r.entries[def.Name] = entry{def: def, exec: exec}
	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister adds a tool or panics.
func (r *Registry) MustRegister(def Definition, exec ExecutorFunc) {
	if err := r.Register(def, exec); err != nil {
		panic(err)
	}
}

// Execute runs the executor for the tool name.
func (r *Registry) Execute(ctx context.Context, toolName string, args json.RawMessage) (json.RawMessage, error) {
	if toolName == "" {
		return nil, fmt.Errorf("tool name is required")
	}
	r.mu.RLock()
	e, ok := r.entries[toolName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no executor registered for %s", toolName)
	}
	return e.exec(ctx, args)
}

// Definitions returns the registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// LLMTools returns the registered tools in the chat completion format.
func (r *Registry) LLMTools() []llm.Tool {
	defs := r.Definitions()
	out := make([]llm.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, llm.Tool{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

// stringSchema builds a JSON schema of required string properties.
func stringSchema(fields []string, descriptions map[string]string) map[string]interface{} {
	props := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		prop := map[string]interface{}{"type": "string"}
		if d, ok := descriptions[f]; ok {
			prop["description"] = d
		}
		props[f] = prop
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   fields,
	}
}

// Package tools provides the customer-service tool suite and the registry the
// dispatcher invokes them through. Tools are synchronous and never fail on
// malformed input; domain failures are reported in the result envelope.
package tools

import (
	"sort"
	"sync"

	"github.com/smartcs-core/server/internal/agent/model"
	logx "github.com/smartcs-core/server/pkg/logger"
)

// Func is one tool operation.
type Func func(args map[string]string) model.ToolResult

// Registry is a plain name-to-tool mapping whose entries can be swapped
// atomically under a lock.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Func
}

// NewRegistry returns a registry seeded with the default tool suite.
func NewRegistry() *Registry {
	return &Registry{tools: Defaults()}
}

// Defaults returns a fresh copy of the default tool suite.
func Defaults() map[string]Func {
	return map[string]Func{
		"query_order":    QueryOrder,
		"apply_refund":   ApplyRefund,
		"create_invoice": CreateInvoice,
		"query_invoice":  QueryInvoice,
	}
}

// Invoke runs the named tool, reporting whether it is registered.
func (r *Registry) Invoke(name string, args map[string]string) (model.ToolResult, bool) {
	r.mu.RLock()
	fn, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return model.ToolResult{}, false
	}

	result := fn(args)
	logx.Debug().Str("tool", name).Bool("success", result.Success).Msg("tool invoked")
	return result, true
}

// Replace swaps one tool implementation. Reporting false means the name was
// not previously registered and nothing changed.
func (r *Registry) Replace(name string, fn Func) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; !ok {
		return false
	}
	r.tools[name] = fn
	logx.Info().Str("tool", name).Msg("tool implementation replaced")
	return true
}

// Names lists registered tools in stable order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ model.ToolInvoker = (*Registry)(nil)

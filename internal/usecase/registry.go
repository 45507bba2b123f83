package usecase

import (
	"context"
	"fmt"
)

// Handler executes one queued unit of work.
type Handler func(ctx context.Context) error

// Registry keeps a mapping from task names to their handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register adds or replaces a handler for the named task.
func (r *Registry) Register(name string, handler Handler) {
	if r.handlers == nil {
		r.handlers = map[string]Handler{}
	}
	r.handlers[name] = handler
}

// Resolve returns a handler by task name or an error if it is absent.
func (r *Registry) Resolve(name string) (Handler, error) {
	if handler, ok := r.handlers[name]; ok {
		return handler, nil
	}
	return nil, fmt.Errorf("task %s is not registered", name)
}

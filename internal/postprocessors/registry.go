package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
)

// BuilderFunc creates a NodePostprocessor from generic config.
// Config is a map of stage-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.NodePostprocessor, error)

// Registry maps stage names to their builders.
// It allows declarative construction of pipelines from configuration
// while keeping the set of behaviours closed and auditable.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new stage registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a stage builder to the registry.
// Name should be unique and match the stage's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a stage by name with the given config.
// Returns domain.ErrUnsupportedType for an unregistered name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.NodePostprocessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown postprocessor %q", domain.ErrUnsupportedType, name)
	}
	return builder(cfg)
}

// BuildPipeline assembles a pipeline from an ordered stage list.
func (r *Registry) BuildPipeline(specs []domain.StageSpec) (*Pipeline, error) {
	pipeline := NewPipeline()
	for _, spec := range specs {
		stage, err := r.Build(spec.Name, spec.Params)
		if err != nil {
			return nil, err
		}
		pipeline.Add(stage)
	}
	return pipeline, nil
}

// Has returns true if a stage with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered stage names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	return names
}

package domain

// StageSpec declaratively describes one postprocessor stage: a
// registered stage name plus its parameter table. Pipelines are
// assembled from an ordered list of these, so the whole chain stays
// serializable and auditable.
type StageSpec struct {
	// Name is the registered stage name (e.g. "keyword", "similarity").
	Name string `toml:"name"`

	// Params holds stage-specific settings parsed from user config.
	Params map[string]any `toml:"params"`
}

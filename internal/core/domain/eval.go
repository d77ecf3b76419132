package domain

// EvalRecord is one labelled retrieval result: the query that was run,
// the IDs the retriever returned (in rank order), and the ground-truth
// relevant IDs. Records are produced by an external dataset generator
// and consumed once by the evaluator.
type EvalRecord struct {
	// Query is the query text, kept for reporting only.
	Query string `json:"query"`

	// Retrieved is the ordered list of retrieved node IDs.
	Retrieved []string `json:"retrieved"`

	// Relevant is the set of ground-truth relevant node IDs.
	Relevant []string `json:"relevant"`
}

// RetrievalMetrics holds ranking-quality metrics for one record or an
// aggregate over many.
type RetrievalMetrics struct {
	// HitRate is 1 when any top-k retrieved ID is relevant, else 0.
	// Aggregated, it is the fraction of records with a hit.
	HitRate float64 `json:"hit_rate"`

	// MRR is the reciprocal rank of the first relevant ID in the
	// top-k, 0 when none is found.
	MRR float64 `json:"mrr"`

	// Precision is the share of the top-k that is relevant.
	Precision float64 `json:"precision"`
}

// EvalSummary is the aggregate over a dataset.
type EvalSummary struct {
	// Metrics is the arithmetic mean of each per-record metric.
	Metrics RetrievalMetrics `json:"metrics"`

	// Evaluated is the number of records included in the mean.
	Evaluated int `json:"evaluated"`

	// Excluded counts records skipped for empty ground truth.
	Excluded int `json:"excluded"`
}

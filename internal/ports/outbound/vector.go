package outbound

import "context"

// VectorMatch is one search hit: a similarity score plus the stored metadata.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// VectorRecord is one record to upsert into the index.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// VectorIndex is the contract for the external vector-search collaborator.
type VectorIndex interface {
	Search(ctx context.Context, query []float32, namespace string, topK int) ([]VectorMatch, error)
	Upsert(ctx context.Context, records []VectorRecord, namespace string) error
}

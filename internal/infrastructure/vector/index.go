// Package vector provides an in-memory cosine-similarity index implementing
// the vector-search port, used for tests and single-process deployments. A
// hosted index drops in behind the same port.
package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/mealforge/v1/internal/ports/outbound"
)

// Index is a namespace-partitioned in-memory vector store.
type Index struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]outbound.VectorRecord
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{namespaces: make(map[string]map[string]outbound.VectorRecord)}
}

// Upsert inserts or replaces records in a namespace.
func (ix *Index) Upsert(ctx context.Context, records []outbound.VectorRecord, namespace string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ns, ok := ix.namespaces[namespace]
	if !ok {
		ns = make(map[string]outbound.VectorRecord)
		ix.namespaces[namespace] = ns
	}
	for _, r := range records {
		ns[r.ID] = r
	}
	return nil
}

// Search returns the topK records by cosine similarity, best first.
func (ix *Index) Search(ctx context.Context, query []float32, namespace string, topK int) ([]outbound.VectorMatch, error) {
	if topK <= 0 || len(query) == 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ns := ix.namespaces[namespace]
	matches := make([]outbound.VectorMatch, 0, len(ns))
	for id, record := range ns {
		score := cosine(query, record.Values)
		matches = append(matches, outbound.VectorMatch{
			ID:       id,
			Score:    score,
			Metadata: record.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Size reports the record count of a namespace.
func (ix *Index) Size(namespace string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.namespaces[namespace])
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

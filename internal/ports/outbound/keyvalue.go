package outbound

import "context"

// KeyValueStore is the contract for the external document/key-value
// collaborator. Values are opaque JSON payloads; a missing document returns
// (nil, nil), not an error.
type KeyValueStore interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Set(ctx context.Context, collection, id string, data []byte) error
}

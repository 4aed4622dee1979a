package complaint

import "context"

// EvidenceStore is the object store holding uploaded attachment bytes.
// Keys are derived from the plaintext content hash, so storing the same
// file twice yields the same key.
type EvidenceStore interface {
	Put(ctx context.Context, content []byte) (objectKey string, contentHash string, err error)
	Get(ctx context.Context, objectKey string) ([]byte, error)
	Delete(ctx context.Context, objectKey string) error
}

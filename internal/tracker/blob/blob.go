// Package blob stores the serialized application collection as one value
// under one fixed key.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing has been written under the key.
var ErrNotFound = errors.New("blob: not found")

// Blob reads and replaces a single value as a whole.
type Blob interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	// Backend names the storage system, for logs and error metadata.
	Backend() string
}

package provider

import (
	"context"
	"errors"

	"github.com/vietdv277/cirrus/pkg/types"
)

// Common errors
var (
	ErrNotFound       = errors.New("object not found")
	ErrAccessDenied   = errors.New("access denied")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrAuthFailed     = errors.New("authentication failed")
)

// ObjectStore defines the storage-backend capability the tool consumes.
// The real backend is S3; tests substitute an in-memory implementation.
type ObjectStore interface {
	// HeadBucket verifies the bucket exists and is accessible
	HeadBucket(ctx context.Context, bucket string) error

	// ListObjects streams every object in the bucket (optionally under
	// prefix) to fn, following pagination internally. Returning false
	// from fn stops the listing early.
	ListObjects(ctx context.Context, bucket, prefix string, fn func(types.Object) bool) error

	// HeadObject returns the metadata snapshot for a single object
	HeadObject(ctx context.Context, bucket, key string) (*types.ObjectMeta, error)

	// CopyObjectInPlace copies the object onto itself with its metadata
	// replaced by meta. The object body is untouched.
	CopyObjectInPlace(ctx context.Context, bucket, key string, meta types.ObjectMeta) error
}

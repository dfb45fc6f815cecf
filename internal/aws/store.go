package aws

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// fallbackContentType mirrors what S3 itself assumes for untyped objects.
const fallbackContentType = "binary/octet-stream"

// Store implements provider.ObjectStore on an S3 client.
type Store struct {
	s3 *s3.Client
}

// NewStore returns a Store backed by the client's S3 connection.
func NewStore(c *Client) *Store {
	return &Store{s3: c.S3}
}

// HeadBucket verifies the bucket exists and the caller can reach it.
func (s *Store) HeadBucket(ctx context.Context, bucket string) error {
	_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: strPtr(bucket)})
	if err != nil {
		return fmt.Errorf("bucket %s: %w", bucket, mapError(err))
	}
	return nil
}

// ListObjects streams every key in the bucket to fn, following the
// ListObjectsV2 pagination internally.
func (s *Store) ListObjects(ctx context.Context, bucket, prefix string, fn func(types.Object) bool) error {
	log := zerolog.Ctx(ctx)

	input := &s3.ListObjectsV2Input{Bucket: strPtr(bucket)}
	if prefix != "" {
		input.Prefix = strPtr(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(s.s3, input)

	pages, total := 0, 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects in %s: %w", bucket, mapError(err))
		}

		pages++
		total += len(page.Contents)
		if pages%10 == 0 {
			log.Debug().Int("pages", pages).Int("objects", total).Msg("listing in progress")
		}

		for _, obj := range page.Contents {
			o := types.Object{Key: deref(obj.Key)}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			if !fn(o) {
				return nil
			}
		}
	}

	return nil
}

// HeadObject fetches the metadata snapshot for one object.
func (s *Store) HeadObject(ctx context.Context, bucket, key string) (*types.ObjectMeta, error) {
	out, err := s.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: strPtr(bucket),
		Key:    strPtr(key),
	})
	if err != nil {
		return nil, fmt.Errorf("head %s: %w", key, mapError(err))
	}

	return &types.ObjectMeta{
		CacheControl:       deref(out.CacheControl),
		ContentType:        deref(out.ContentType),
		ContentEncoding:    deref(out.ContentEncoding),
		ContentLanguage:    deref(out.ContentLanguage),
		ContentDisposition: deref(out.ContentDisposition),
		Metadata:           out.Metadata,
	}, nil
}

// CopyObjectInPlace copies the object onto itself with REPLACE metadata
// semantics. A single call either fully succeeds or leaves the object
// untouched, which is what makes per-object mutations atomic.
func (s *Store) CopyObjectInPlace(ctx context.Context, bucket, key string, meta types.ObjectMeta) error {
	contentType := meta.ContentType
	if contentType == "" {
		contentType = fallbackContentType
	}

	input := &s3.CopyObjectInput{
		Bucket:            strPtr(bucket),
		Key:               strPtr(key),
		CopySource:        strPtr(bucket + "/" + url.PathEscape(key)),
		MetadataDirective: s3types.MetadataDirectiveReplace,
		ContentType:       strPtr(contentType),
		Metadata:          meta.Metadata,
	}

	// Optional headers are set only when present so a revert can bring
	// an object back to a truly unset state.
	if meta.CacheControl != "" {
		input.CacheControl = strPtr(meta.CacheControl)
	}
	if meta.ContentEncoding != "" {
		input.ContentEncoding = strPtr(meta.ContentEncoding)
	}
	if meta.ContentLanguage != "" {
		input.ContentLanguage = strPtr(meta.ContentLanguage)
	}
	if meta.ContentDisposition != "" {
		input.ContentDisposition = strPtr(meta.ContentDisposition)
	}

	if _, err := s.s3.CopyObject(ctx, input); err != nil {
		return fmt.Errorf("copy %s: %w", key, mapError(err))
	}

	return nil
}

// mapError converts SDK error codes into the provider sentinels so the
// engine and commands can branch with errors.Is.
func mapError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchKey", "404":
		return fmt.Errorf("%w: %s", provider.ErrNotFound, apiErr.ErrorMessage())
	case "NoSuchBucket":
		return fmt.Errorf("%w: %s", provider.ErrBucketNotFound, apiErr.ErrorMessage())
	case "AccessDenied", "Forbidden", "403":
		return fmt.Errorf("%w: %s", provider.ErrAccessDenied, apiErr.ErrorMessage())
	default:
		return err
	}
}

package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vietdv277/cirrus/internal/backup"
	"github.com/vietdv277/cirrus/pkg/provider"
)

// Updater rewrites the Cache-Control value of individual objects via a
// metadata-preserving copy-in-place.
type Updater struct {
	Store        provider.ObjectStore
	Bucket       string
	CacheControl string
	DryRun       bool
	Sink         *backup.Sink // nil disables backup collection
}

// Apply processes one object. The operation is idempotent: an object
// that already carries the target value is never written again.
func (u *Updater) Apply(ctx context.Context, key string) Outcome {
	log := zerolog.Ctx(ctx)

	meta, err := u.Store.HeadObject(ctx, u.Bucket, key)
	if err != nil {
		return Outcome{Key: key, Status: StatusError, Err: err}
	}

	if meta.CacheControl == u.CacheControl {
		log.Debug().Str("key", key).Msg("cache-control already correct")
		return Outcome{
			Key:    key,
			Status: StatusAlreadyCorrect,
			Before: meta.CacheControl,
			After:  meta.CacheControl,
		}
	}

	if u.DryRun {
		return Outcome{
			Key:    key,
			Status: StatusWouldUpdate,
			Before: meta.CacheControl,
			After:  u.CacheControl,
		}
	}

	// Snapshot before the write so a failed copy never leaves an object
	// changed but unrecorded.
	u.Sink.Append(backup.Record{Key: key, ObjectMeta: *meta})

	if err := u.Store.CopyObjectInPlace(ctx, u.Bucket, key, meta.WithCacheControl(u.CacheControl)); err != nil {
		return Outcome{Key: key, Status: StatusError, Before: meta.CacheControl, Err: err}
	}

	log.Debug().Str("key", key).Str("before", meta.CacheControl).Str("after", u.CacheControl).Msg("cache-control updated")
	return Outcome{
		Key:    key,
		Status: StatusUpdated,
		Before: meta.CacheControl,
		After:  u.CacheControl,
	}
}

package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vietdv277/cirrus/internal/backup"
	"github.com/vietdv277/cirrus/pkg/provider"
)

// Reverter restores objects to their backed-up metadata. The backup's
// object set is authoritative; no filters are consulted.
type Reverter struct {
	Store  provider.ObjectStore
	Bucket string
	DryRun bool
}

// Apply restores one backup record. A record whose object has since
// disappeared becomes an error outcome, not a batch failure.
func (r *Reverter) Apply(ctx context.Context, rec backup.Record) Outcome {
	log := zerolog.Ctx(ctx)

	current, err := r.Store.HeadObject(ctx, r.Bucket, rec.Key)
	if err != nil {
		return Outcome{Key: rec.Key, Status: StatusError, Err: err}
	}

	if r.DryRun {
		return Outcome{
			Key:    rec.Key,
			Status: StatusWouldUpdate,
			Before: current.CacheControl,
			After:  rec.ObjectMeta.CacheControl,
		}
	}

	if err := r.Store.CopyObjectInPlace(ctx, r.Bucket, rec.Key, rec.ObjectMeta); err != nil {
		return Outcome{Key: rec.Key, Status: StatusError, Before: current.CacheControl, Err: err}
	}

	log.Debug().Str("key", rec.Key).Str("restored", rec.ObjectMeta.CacheControl).Msg("metadata reverted")
	return Outcome{
		Key:    rec.Key,
		Status: StatusUpdated,
		Before: current.CacheControl,
		After:  rec.ObjectMeta.CacheControl,
	}
}

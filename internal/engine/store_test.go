package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// fakeStore is an in-memory ObjectStore with call counters, standing in
// for S3 in engine tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]types.ObjectMeta

	headCalls int
	copyCalls int

	failCopy map[string]error // per-key forced copy failures
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  make(map[string]types.ObjectMeta),
		failCopy: make(map[string]error),
	}
}

func (f *fakeStore) put(key string, meta types.ObjectMeta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = meta
}

func (f *fakeStore) HeadBucket(ctx context.Context, bucket string) error {
	return nil
}

func (f *fakeStore) ListObjects(ctx context.Context, bucket, prefix string, fn func(types.Object) bool) error {
	f.mu.Lock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	f.mu.Unlock()

	for _, k := range keys {
		if !fn(types.Object{Key: k}) {
			return nil
		}
	}
	return nil
}

func (f *fakeStore) HeadObject(ctx context.Context, bucket, key string) (*types.ObjectMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headCalls++
	meta, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("head %s: %w", key, provider.ErrNotFound)
	}
	out := meta
	return &out, nil
}

func (f *fakeStore) CopyObjectInPlace(ctx context.Context, bucket, key string, meta types.ObjectMeta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copyCalls++
	if err, ok := f.failCopy[key]; ok {
		return err
	}
	if _, ok := f.objects[key]; !ok {
		return fmt.Errorf("copy %s: %w", key, provider.ErrNotFound)
	}
	f.objects[key] = meta
	return nil
}

func (f *fakeStore) copies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyCalls
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/cirrus/internal/backup"
	"github.com/vietdv277/cirrus/pkg/types"
)

func TestClampWorkers(t *testing.T) {
	assert.Equal(t, 1, ClampWorkers(0))
	assert.Equal(t, 1, ClampWorkers(-5))
	assert.Equal(t, 10, ClampWorkers(10))
	assert.Equal(t, 20, ClampWorkers(99))
}

func TestRunAggregatesOutcomes(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	fn := func(ctx context.Context, key string) Outcome {
		switch key {
		case "a", "b":
			return Outcome{Key: key, Status: StatusUpdated}
		case "c":
			return Outcome{Key: key, Status: StatusAlreadyCorrect}
		case "d":
			return Outcome{Key: key, Status: StatusWouldUpdate}
		default:
			return Outcome{Key: key, Status: StatusError, Err: errors.New("boom")}
		}
	}

	s := Run(context.Background(), items, 3, fn, nil)
	assert.Equal(t, 2, s.Updated)
	assert.Equal(t, 1, s.AlreadyCorrect)
	assert.Equal(t, 1, s.WouldUpdate)
	assert.Equal(t, 1, s.Errored)
	require.Len(t, s.Failures, 1)
	assert.Equal(t, "e", s.Failures[0].Key)
	assert.False(t, s.Ok())
	assert.Equal(t, 5, s.Total())
}

func TestRunPartialFailureIsolation(t *testing.T) {
	// An early failure must not stop later items from being attempted.
	const n = 50
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}

	var attempted int64
	fn := func(ctx context.Context, i int) Outcome {
		atomic.AddInt64(&attempted, 1)
		if i == 0 {
			return Outcome{Key: "0", Status: StatusError, Err: errors.New("first item fails")}
		}
		return Outcome{Key: fmt.Sprint(i), Status: StatusUpdated}
	}

	s := Run(context.Background(), items, 4, fn, nil)
	assert.Equal(t, int64(n), atomic.LoadInt64(&attempted), "every item must be attempted")
	assert.Equal(t, n-1, s.Updated)
	assert.Equal(t, 1, s.Errored)
}

func TestRunProgressIndexMonotonic(t *testing.T) {
	items := make([]int, 40)
	for i := range items {
		items[i] = i
	}

	var mu sync.Mutex
	var indexes []int
	report := func(i, n int, o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, len(items), n)
		indexes = append(indexes, i)
	}

	Run(context.Background(), items, 8, func(ctx context.Context, i int) Outcome {
		return Outcome{Status: StatusUpdated}
	}, report)

	require.Len(t, indexes, len(items))
	for i, idx := range indexes {
		assert.Equal(t, i+1, idx, "progress index must increase by one per completion")
	}
}

func TestRunRespectsWorkerLimit(t *testing.T) {
	const limit = 3
	var current, peak int64

	fn := func(ctx context.Context, i int) Outcome {
		c := atomic.AddInt64(&current, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if c <= p || atomic.CompareAndSwapInt64(&peak, p, c) {
				break
			}
		}
		defer atomic.AddInt64(&current, -1)
		return Outcome{Status: StatusUpdated}
	}

	items := make([]int, 100)
	Run(context.Background(), items, limit, fn, nil)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(limit))
}

func TestRunRecoversWorkerPanic(t *testing.T) {
	items := []int{0, 1, 2}
	fn := func(ctx context.Context, i int) Outcome {
		if i == 1 {
			panic("bad item")
		}
		return Outcome{Status: StatusUpdated}
	}

	s := Run(context.Background(), items, 2, fn, nil)
	assert.Equal(t, 2, s.Updated)
	assert.Equal(t, 1, s.Errored)
	require.Len(t, s.Failures, 1)
	assert.Contains(t, s.Failures[0].Err.Error(), "worker panic")
}

func TestRunEmptyBatch(t *testing.T) {
	s := Run(context.Background(), nil, 10, func(ctx context.Context, s string) Outcome {
		t.Fatal("must not be called")
		return Outcome{}
	}, nil)
	assert.Equal(t, 0, s.Total())
	assert.True(t, s.Ok())
}

func TestRunDrivesUpdaterBatch(t *testing.T) {
	// End-to-end through the pool: a mixed batch against the fake store.
	store := newFakeStore()
	store.put("up.png", types.ObjectMeta{CacheControl: "old"})
	store.put("ok.png", types.ObjectMeta{CacheControl: target})
	sink := backup.NewSink()
	u := &Updater{Store: store, Bucket: "b", CacheControl: target, Sink: sink}

	s := Run(context.Background(), []string{"up.png", "ok.png", "missing.png"}, 2, u.Apply, nil)
	assert.Equal(t, 1, s.Updated)
	assert.Equal(t, 1, s.AlreadyCorrect)
	assert.Equal(t, 1, s.Errored)
	assert.Equal(t, 1, sink.Len(), "only the rewritten object gets a backup record")
}

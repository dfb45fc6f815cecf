// Package engine performs the per-object metadata mutations and fans
// batches of them out to a bounded worker pool.
package engine

// Status tags the result of processing one object.
type Status int

const (
	// StatusUpdated means the object's metadata was rewritten
	StatusUpdated Status = iota
	// StatusAlreadyCorrect means the Cache-Control value already matched
	StatusAlreadyCorrect
	// StatusWouldUpdate is reported instead of StatusUpdated in dry runs
	StatusWouldUpdate
	// StatusError means the object could not be processed
	StatusError
)

// Outcome is the per-object result. Errors are values here, never
// panics, so the pool can aggregate them without aborting the batch.
type Outcome struct {
	Key    string
	Status Status
	Before string // Cache-Control before the change
	After  string // Cache-Control after the change (or that would be applied)
	Err    error
}

// Failure pairs a key with the error that stopped it.
type Failure struct {
	Key string
	Err error
}

// Summary aggregates a batch. Counts are maintained by the pool's
// single collector goroutine, so no locking is needed here.
type Summary struct {
	Updated        int
	AlreadyCorrect int
	WouldUpdate    int
	Errored        int
	Failures       []Failure
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusUpdated:
		s.Updated++
	case StatusAlreadyCorrect:
		s.AlreadyCorrect++
	case StatusWouldUpdate:
		s.WouldUpdate++
	case StatusError:
		s.Errored++
		s.Failures = append(s.Failures, Failure{Key: o.Key, Err: o.Err})
	}
}

// Total returns the number of processed items.
func (s *Summary) Total() int {
	return s.Updated + s.AlreadyCorrect + s.WouldUpdate + s.Errored
}

// Ok reports whether the batch finished without per-object errors.
func (s *Summary) Ok() bool {
	return s.Errored == 0
}

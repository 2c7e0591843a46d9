// Package viewstate tracks the observable state of a request cycle: idle,
// loading, succeeded with a payload, or failed with an error. A Store is
// constructed explicitly, owned by whoever renders it, and closed when that
// owner is done; there is no shared global instance.
package viewstate

import (
	"context"
	"sync"
)

// Phase names the four observable stages of a request cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// State is one immutable observation of a store. Value is set only when
// Phase is PhaseSucceeded and Err only when PhaseFailed. Seq identifies the
// Perform invocation the observation belongs to.
type State[T any] struct {
	Phase Phase
	Value T
	Err   error
	Seq   uint64
}

// Terminal reports whether the state concludes a request cycle.
func (s State[T]) Terminal() bool {
	return s.Phase == PhaseSucceeded || s.Phase == PhaseFailed
}

// Call performs the asynchronous work a store tracks.
type Call[T any] func(ctx context.Context) (T, error)

// Subscription delivers a store's transitions in the order they happen. The
// channel closes when the subscription is cancelled or the store closes.
type Subscription[T any] struct {
	C      <-chan State[T]
	cancel func()
}

// Cancel detaches the subscription from its store.
func (s *Subscription[T]) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
	}
}

const subscriptionBuffer = 16

// Store tracks one request cycle at a time. Starting a new cycle while an
// earlier one is still in flight supersedes it: the stale result is discarded
// and only the newest invocation decides the final state.
type Store[T any] struct {
	mu     sync.Mutex
	state  State[T]
	seq    uint64
	subs   map[uint64]chan State[T]
	nextID uint64
	closed bool
}

// New builds a store in the idle phase.
func New[T any]() *Store[T] {
	return &Store[T]{
		state: State[T]{Phase: PhaseIdle},
		subs:  make(map[uint64]chan State[T]),
	}
}

// State returns the current observation.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer for state transitions. Subscribing to a
// closed store yields an already-closed channel.
func (s *Store[T]) Subscribe() *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State[T], subscriptionBuffer)
	if s.closed {
		close(ch)
		return &Subscription[T]{C: ch}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	return &Subscription[T]{
		C:      ch,
		cancel: func() { s.dropSubscriber(id) },
	}
}

func (s *Store[T]) dropSubscriber(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.subs[id]
	if !ok {
		return
	}
	delete(s.subs, id)
	close(ch)
}

// Perform starts a new request cycle. The store moves to loading before
// Perform returns, then to succeeded or failed when call resolves, unless a
// newer Perform superseded this one in the meantime. The returned sequence
// token identifies the invocation; it is zero when the store is closed or
// call is nil.
func (s *Store[T]) Perform(ctx context.Context, call Call[T]) uint64 {
	if call == nil {
		return 0
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.seq++
	token := s.seq
	s.applyLocked(State[T]{Phase: PhaseLoading, Seq: token})
	s.mu.Unlock()

	go func() {
		value, err := call(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || token != s.seq {
			return
		}

		next := State[T]{Seq: token}
		if err != nil {
			next.Phase = PhaseFailed
			next.Err = err
		} else {
			next.Phase = PhaseSucceeded
			next.Value = value
		}
		s.applyLocked(next)
	}()

	return token
}

// applyLocked records the state and fans it out. Callers hold s.mu. A full
// subscriber channel misses the observation; State() always has the latest.
func (s *Store[T]) applyLocked(next State[T]) {
	s.state = next
	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
		}
	}
}

// Close ends all subscriptions and turns further Perform calls into no-ops.
// Results of calls still in flight are discarded.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

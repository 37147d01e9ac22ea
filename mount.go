package postboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Effect is the one-shot asynchronous work started when an instance mounts.
// Its return value becomes the instance's settled state. ctx is cancelled
// when the instance is unmounted.
type Effect[S any] func(ctx context.Context) S

// Instance is one mounted copy of a component's state.
//
// State starts at the initial value given to Mount and is replaced at most
// once, by the effect. Updates arriving after Unmount are dropped.
type Instance[S any] struct {
	id        string
	gen       uint64
	mountedAt time.Time

	mu      sync.Mutex
	state   S
	torn    bool
	settled chan struct{}
	gone    chan struct{}
	cancel  context.CancelFunc
}

// ID returns the instance's mount ID.
func (i *Instance[S]) ID() string { return i.id }

// Generation returns the mount counter value assigned to this instance.
func (i *Instance[S]) Generation() uint64 { return i.gen }

// State returns the current state.
func (i *Instance[S]) State() S {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Settled reports whether the effect's result has been applied.
func (i *Instance[S]) Settled() bool {
	select {
	case <-i.settled:
		return true
	default:
		return false
	}
}

// Done is closed once the effect's result has been applied.
func (i *Instance[S]) Done() <-chan struct{} {
	return i.settled
}

// Wait blocks until the instance settles, is unmounted, or ctx is done, and
// returns the state at that point. Unmounting yields ErrNotFound.
func (i *Instance[S]) Wait(ctx context.Context) (S, error) {
	select {
	case <-i.settled:
		return i.State(), nil
	case <-i.gone:
		if i.Settled() {
			return i.State(), nil
		}
		return i.State(), fmt.Errorf("%w: mount %q unmounted", ErrNotFound, i.id)
	case <-ctx.Done():
		return i.State(), ctx.Err()
	}
}

// settle applies the effect result unless the instance was torn down.
func (i *Instance[S]) settle(next S) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.torn {
		return false
	}
	i.state = next
	close(i.settled)
	return true
}

func (i *Instance[S]) teardown() {
	i.mu.Lock()
	if !i.torn {
		i.torn = true
		close(i.gone)
	}
	i.mu.Unlock()
	i.cancel()
}

// Mounts owns the live instances of one component.
type Mounts[S any] struct {
	mu        sync.RWMutex
	instances map[string]*Instance[S]
	gen       uint64
	now       func() time.Time
	onPanic   func(v any) S
}

// NewMounts creates an empty instance table.
func NewMounts[S any]() *Mounts[S] {
	return &Mounts[S]{
		instances: make(map[string]*Instance[S]),
		now:       time.Now,
	}
}

// OnPanic sets how a panicking effect settles its instance: f receives the
// recovered value and returns the state to apply. Without it the panic is
// swallowed and the instance stays in its initial state until unmounted.
// Call it before the first Mount.
func (m *Mounts[S]) OnPanic(f func(v any) S) *Mounts[S] {
	m.onPanic = f
	return m
}

// Mount creates an instance in state initial and starts effect in its own
// goroutine. The effect runs exactly once per instance.
func (m *Mounts[S]) Mount(initial S, effect Effect[S]) *Instance[S] {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	m.gen++
	inst := &Instance[S]{
		id:        uuid.NewString(),
		gen:       m.gen,
		mountedAt: m.now(),
		state:     initial,
		settled:   make(chan struct{}),
		gone:      make(chan struct{}),
		cancel:    cancel,
	}
	m.instances[inst.id] = inst
	m.mu.Unlock()

	go func() {
		next, ok := m.run(ctx, effect)
		if !ok || !m.current(inst) {
			return
		}
		inst.settle(next)
	}()
	return inst
}

// run calls effect, recovering a panic so it cannot take the process down.
func (m *Mounts[S]) run(ctx context.Context, effect Effect[S]) (next S, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			if m.onPanic == nil {
				ok = false
				return
			}
			next, ok = m.onPanic(v), true
		}
	}()
	return effect(ctx), true
}

// current reports whether inst is still the live instance under its ID.
func (m *Mounts[S]) current(inst *Instance[S]) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	live, ok := m.instances[inst.id]
	return ok && live.gen == inst.gen
}

// Get returns the live instance with the given ID.
func (m *Mounts[S]) Get(id string) (*Instance[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: mount %q", ErrNotFound, id)
	}
	return inst, nil
}

// Unmount tears the instance down, cancelling its effect. It reports whether
// an instance was removed.
func (m *Mounts[S]) Unmount(id string) bool {
	m.mu.Lock()
	inst, ok := m.instances[id]
	delete(m.instances, id)
	m.mu.Unlock()

	if ok {
		inst.teardown()
	}
	return ok
}

// Sweep unmounts every instance older than maxAge and returns how many it
// removed.
func (m *Mounts[S]) Sweep(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	var stale []*Instance[S]
	for id, inst := range m.instances {
		if inst.mountedAt.Before(cutoff) {
			stale = append(stale, inst)
			delete(m.instances, id)
		}
	}
	m.mu.Unlock()

	for _, inst := range stale {
		inst.teardown()
	}
	return len(stale)
}

// Len returns the number of live instances.
func (m *Mounts[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}

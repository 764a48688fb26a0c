// Package bridge hands canvas objects to a host runtime as opaque handles.
//
// A Registry stores values in slots and enforces a single-writer borrow
// discipline at run time: any number of shared borrows, or exactly one
// exclusive borrow. Conflicting borrows and finalizing a borrowed value
// are programming errors and panic.
package bridge

import "fmt"

// Handle identifies a value in a Registry. The zero Handle is never valid.
type Handle uint64

func makeHandle(index, gen uint32) Handle { return Handle(uint64(gen)<<32 | uint64(index)) }

func (h Handle) index() uint32 { return uint32(h) }
func (h Handle) gen() uint32   { return uint32(h >> 32) }

func (h Handle) String() string { return fmt.Sprintf("handle(%d#%d)", h.index(), h.gen()) }

// exclusive marks a slot held by BorrowMut.
const exclusive = -1

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
	// borrows counts shared borrows, or is exclusive.
	borrows int
}

// Registry is an arena of borrow-checked values. It is not safe for
// concurrent use; hosts call it from their single mutator thread.
type Registry[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle.
func (r *Registry[T]) Insert(v T) Handle {
	var i uint32
	if n := len(r.free); n > 0 {
		i = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot[T]{})
		i = uint32(len(r.slots) - 1)
	}
	s := &r.slots[i]
	s.gen++
	s.value = v
	s.live = true
	s.borrows = 0
	r.live++
	return makeHandle(i, s.gen)
}

func (r *Registry[T]) slot(h Handle, op string) *slot[T] {
	i := h.index()
	if int(i) >= len(r.slots) || !r.slots[i].live || r.slots[i].gen != h.gen() {
		panic(fmt.Sprintf("bridge: %s of stale or unknown %v", op, h))
	}
	return &r.slots[i]
}

// Valid reports whether h refers to a live value.
func (r *Registry[T]) Valid(h Handle) bool {
	i := h.index()
	return int(i) < len(r.slots) && r.slots[i].live && r.slots[i].gen == h.gen()
}

// Len returns the number of live values.
func (r *Registry[T]) Len() int { return r.live }

// Borrow returns shared access to the value of h. The caller must call
// release exactly once. Borrow panics while h is borrowed exclusively.
func (r *Registry[T]) Borrow(h Handle) (v *T, release func()) {
	s := r.slot(h, "borrow")
	if s.borrows == exclusive {
		panic(fmt.Sprintf("bridge: %v already mutably borrowed", h))
	}
	s.borrows++
	return &s.value, r.releaser(h, func(s *slot[T]) { s.borrows-- })
}

// BorrowMut returns exclusive access to the value of h. The caller must
// call release exactly once. BorrowMut panics while h has any borrow.
func (r *Registry[T]) BorrowMut(h Handle) (v *T, release func()) {
	s := r.slot(h, "mutable borrow")
	if s.borrows != 0 {
		panic(fmt.Sprintf("bridge: %v already borrowed", h))
	}
	s.borrows = exclusive
	return &s.value, r.releaser(h, func(s *slot[T]) { s.borrows = 0 })
}

func (r *Registry[T]) releaser(h Handle, undo func(*slot[T])) func() {
	done := false
	return func() {
		if done {
			panic(fmt.Sprintf("bridge: %v released twice", h))
		}
		done = true
		undo(r.slot(h, "release"))
	}
}

// With calls fn with shared access to the value of h.
func (r *Registry[T]) With(h Handle, fn func(*T)) {
	v, release := r.Borrow(h)
	defer release()
	fn(v)
}

// WithMut calls fn with exclusive access to the value of h.
func (r *Registry[T]) WithMut(h Handle, fn func(*T)) {
	v, release := r.BorrowMut(h)
	defer release()
	fn(v)
}

// Finalize drops the value of h and frees its slot. It is called from the
// host's finalizer and panics if the value is still borrowed.
func (r *Registry[T]) Finalize(h Handle) {
	s := r.slot(h, "finalize")
	if s.borrows != 0 {
		panic(fmt.Sprintf("bridge: %v finalized while borrowed", h))
	}
	var zero T
	s.value = zero
	s.live = false
	r.free = append(r.free, h.index())
	r.live--
}

package router

// Stack is an ordered, oldest-first navigation stack. The last entry is the
// top. It backs both the store's desired route stack and the reconciler's
// record of live surfaces.
//
// Stack is not safe for concurrent use; each owner confines it to one
// goroutine.
type Stack[T any] struct {
	entries []T
}

// NewStack creates a new empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		entries: make([]T, 0),
	}
}

// Push adds a new entry on top.
func (s *Stack[T]) Push(entry T) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry.
// Returns false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	entry := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
	return entry, true
}

// Peek returns the top entry without removing it.
// Returns false if the stack is empty.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.entries) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// At returns the entry at index i, counted from the bottom.
func (s *Stack[T]) At(i int) T {
	return s.entries[i]
}

// RemoveAt deletes the entry at index i, shifting later entries down.
func (s *Stack[T]) RemoveAt(i int) {
	var zero T
	copy(s.entries[i:], s.entries[i+1:])
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Entries returns a copy of the stack, oldest first.
func (s *Stack[T]) Entries() []T {
	out := make([]T, len(s.entries))
	copy(out, s.entries)
	return out
}

package router

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestStack(t *testing.T) {
	s := NewStack[string]()
	assert.Assert(t, s.IsEmpty())

	_, ok := s.Pop()
	assert.Assert(t, !ok)
	_, ok = s.Peek()
	assert.Assert(t, !ok)

	s.Push("a")
	s.Push("b")
	s.Push("c")
	assert.Equal(t, s.Len(), 3)

	top, ok := s.Peek()
	assert.Assert(t, ok)
	assert.Equal(t, top, "c")
	assert.Equal(t, s.At(0), "a")

	s.RemoveAt(1)
	assert.Check(t, is.DeepEqual(s.Entries(), []string{"a", "c"}))

	popped, ok := s.Pop()
	assert.Assert(t, ok)
	assert.Equal(t, popped, "c")

	entries := s.Entries()
	entries[0] = "mutated"
	assert.Equal(t, s.At(0), "a")

	s.Clear()
	assert.Assert(t, s.IsEmpty())
	assert.Check(t, is.Len(s.Entries(), 0))
}

func TestCacheDestroysReplacedSurfaces(t *testing.T) {
	c := NewCache[*surface]()
	a, b := panel("a"), panel("b")
	first := &surface{name: "a"}
	second := &surface{name: "b"}

	c.Set(a, first)
	c.Set(b, second)
	assert.Equal(t, c.Len(), 2)
	assertStack(t, c.Keys(), a, b)

	got, ok := c.Get(a)
	assert.Assert(t, ok)
	assert.Assert(t, got == first)

	replacement := &surface{name: "a2"}
	c.Set(a, replacement)
	assert.Equal(t, first.destroyed.Load(), int64(1))
	assertStack(t, c.Keys(), a, b)

	c.Destroy()
	assert.Equal(t, c.Len(), 0)
	assert.Equal(t, replacement.destroyed.Load(), int64(1))
	assert.Equal(t, second.destroyed.Load(), int64(1))
	_, ok = c.Get(a)
	assert.Assert(t, !ok)
}

func TestCacheAcceptsNonDestroyableContent(t *testing.T) {
	c := NewCache[string]()
	c.Set(panel("a"), "a")
	c.Set(panel("a"), "b")
	c.Destroy()
	assert.Check(t, is.Len(c.Keys(), 0))
}

func TestDismissCallbackRunsOnce(t *testing.T) {
	var runs int
	cb := newDismissCallback(func() { runs++ })

	assert.Assert(t, cb.fire())
	assert.Assert(t, !cb.fire())
	assert.Equal(t, runs, 1)
	assert.Assert(t, cb.Consumed())

	discarded := newDismissCallback(func() { runs++ })
	discarded.discard()
	assert.Assert(t, !discarded.fire())
	assert.Equal(t, runs, 1)

	var none *DismissCallback
	assert.Assert(t, newDismissCallback(nil) == nil)
	assert.Assert(t, !none.fire())
	assert.Assert(t, none.Consumed())
}

// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfreelist

import "sync/atomic"

// Node is both the list's link structure and the element: the list is
// intrusive, so Value lives in the same allocation as the links that
// chain it. A *Node[T] is only ever observed through List operations;
// once Delete or Sweep has released one, it must not be touched again.
type Node[T any] struct {
	next atomic.Pointer[Node[T]]
	prev atomic.Pointer[Node[T]] // advisory under contention; see PopTail

	// removed is monotonic: false at creation, set true by MarkRemoved,
	// and never cleared for the lifetime of the node.
	removed atomic.Bool

	// refcount is maintained entirely by callers holding transient
	// references to the node (e.g. a worker processing it); the list
	// core only ever reads it, during Sweep and CountPending.
	refcount atomic.Int64

	// Value holds the caller's payload.
	Value T
}

func newNode[T any](v T) *Node[T] {
	n := &Node[T]{Value: v}
	return n
}

// Removed reports whether MarkRemoved has been called on n.
func (n *Node[T]) Removed() bool {
	return n.removed.Load()
}

// RefCount returns n's current reference count.
func (n *Node[T]) RefCount() int64 {
	return n.refcount.Load()
}

// Guard is an RAII-style handle on a node's refcount: Acquire increments
// it, and Release (idempotent, safe to call from a deferred call) decrements
// it back. It exists so that deferred reclamation via Sweep composes with
// ordinary Go control flow instead of requiring callers to manage the
// refcount by hand.
type Guard[T any] struct {
	node *Node[T]
}

// Acquire increments n's refcount and returns a Guard whose Release
// decrements it back. Typical use:
//
//	g := node.Acquire()
//	defer g.Release()
//
// The returned Guard is not safe for concurrent use from multiple
// goroutines; each Acquire should be paired with exactly one Release.
func (n *Node[T]) Acquire() *Guard[T] {
	n.refcount.Add(1)
	return &Guard[T]{node: n}
}

// Release decrements the guarded node's refcount. Calling Release more
// than once on the same Guard is a no-op after the first call.
func (g *Guard[T]) Release() {
	if g.node == nil {
		return
	}
	g.node.refcount.Add(-1)
	g.node = nil
}

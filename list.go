// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfreelist

import "sync/atomic"

// List is a lock-free doubly linked list of Node[T]. The zero value is
// an empty, ready-to-use list; New is provided only for symmetry with
// the rest of the pack's constructors. A List must not be copied after
// first use.
type List[T any] struct {
	head atomic.Pointer[Node[T]]
	tail atomic.Pointer[Node[T]]
}

// New returns an empty, ready-to-use list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Init resets l to empty. It is idempotent on an already-empty list and
// must not be called concurrently with any other operation on l: it is
// meant for (re)establishing an empty list before publication, not for
// quiescent reuse under concurrent access.
func (l *List[T]) Init() {
	l.head.Store(nil)
	l.tail.Store(nil)
}

// Clear tears l down single-threaded: it walks the chain from head,
// dropping every node's links so nothing keeps the chain alive, then
// resets both endpoints to nil. It must not be called while any other
// goroutine holds a reference into l.
func (l *List[T]) Clear() {
	cur := l.head.Load()
	for cur != nil {
		next := cur.next.Load()
		cur.next.Store(nil)
		cur.prev.Store(nil)
		cur = next
	}
	l.head.Store(nil)
	l.tail.Store(nil)
}

// PushTail allocates a node holding v and appends it at the tail.
func (l *List[T]) PushTail(v T) *Node[T] {
	n := newNode(v)
	l.AttachTail(n)
	return n
}

// PushHead allocates a node holding v and prepends it at the head.
func (l *List[T]) PushHead(v T) *Node[T] {
	n := newNode(v)
	l.AttachHead(n)
	return n
}

// AttachTail links an externally allocated node n at the tail of l. n
// must not already be linked into any list. Unlike PushTail, it performs
// no allocation, which lets a caller reuse node storage from an arena or
// a sync.Pool.
func (l *List[T]) AttachTail(n *Node[T]) {
	n.next.Store(nil)
	n.removed.Store(false)
	for {
		tail := l.tail.Load()
		if tail == nil {
			if l.head.CompareAndSwap(nil, n) {
				l.tail.Store(n)
				n.prev.Store(nil)
				return
			}
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			n.prev.Store(tail)
			// Best-effort: this loses only if another operation has
			// already moved tail, and a loss is not retried. AttachTail
			// never advances a stale tail by following next; it always
			// links onto whatever node tail currently holds.
			l.tail.CompareAndSwap(tail, n)
			return
		}
	}
}

// AttachHead links an externally allocated node n at the head of l. n
// must not already be linked into any list.
func (l *List[T]) AttachHead(n *Node[T]) {
	n.removed.Store(false)
	var h *Node[T]
	for {
		h = l.head.Load()
		n.next.Store(h)
		n.prev.Store(nil)
		if l.head.CompareAndSwap(h, n) {
			break
		}
	}
	if h != nil {
		h.prev.Store(n)
	} else {
		l.tail.Store(n)
	}
}

// MarkRemoved logically removes n: a single store of its removed flag.
// It never retries, performs no link edits, and is safe to call more
// than once (the second call is a no-op). The node remains chained; all
// traversal operations skip it from this point on, and Sweep may later
// unlink and release it once its refcount reaches zero.
func (l *List[T]) MarkRemoved(n *Node[T]) {
	n.removed.Store(true)
}

// Delete unlinks n structurally and releases it in one call. Each
// repair CAS is best-effort: if the expected neighbor link no longer
// holds n, the CAS is silently absorbed, on the theory that a concurrent
// operation has already moved past n. Delete cannot fail externally; it
// always proceeds. Callers must guarantee no other goroutine will
// dereference n after Delete returns (the usual pattern is to break out
// of any iteration immediately after calling Delete on the current
// element). Concurrent Delete of adjacent nodes can race into a
// best-effort no-op on one of the repair CASes; see the package's
// design notes for why this is an accepted limitation rather than a bug
// this implementation retries around.
func (l *List[T]) Delete(n *Node[T]) {
	p := n.prev.Load()
	nx := n.next.Load()
	if p != nil {
		p.next.CompareAndSwap(n, nx)
	} else {
		l.head.CompareAndSwap(n, nx)
	}
	if nx != nil {
		nx.prev.CompareAndSwap(n, p)
	} else {
		l.tail.CompareAndSwap(n, p)
	}
}

// PopHead unlinks and returns the head node without releasing it,
// letting the caller inspect its Value before disposal. It returns nil
// on an empty list.
func (l *List[T]) PopHead() *Node[T] {
	for {
		h := l.head.Load()
		if h == nil {
			return nil
		}
		next := h.next.Load()
		if l.head.CompareAndSwap(h, next) {
			if next == nil {
				l.tail.Store(nil)
			}
			h.next.Store(nil)
			h.prev.Store(nil)
			return h
		}
	}
}

// PopTail unlinks and returns the tail node without releasing it. Since
// the list is only weakly doubly linked under contention, the tail's
// predecessor is located by a forward walk from head rather than by
// trusting prev. It returns nil on an empty list, or if the tail node
// vanished out from under the walk (another goroutine raced it away).
func (l *List[T]) PopTail() *Node[T] {
	for {
		t := l.tail.Load()
		if t == nil {
			return nil
		}
		var prev *Node[T]
		cur := l.head.Load()
		for cur != nil && cur != t {
			prev = cur
			cur = cur.next.Load()
		}
		if cur == nil {
			return nil
		}
		if prev != nil {
			if l.tail.CompareAndSwap(t, prev) {
				prev.next.Store(nil)
				cur.next.Store(nil)
				cur.prev.Store(nil)
				return cur
			}
		} else {
			if l.head.CompareAndSwap(t, nil) {
				l.tail.Store(nil)
				cur.next.Store(nil)
				cur.prev.Store(nil)
				return cur
			}
		}
		// Lost the race; reload tail and retry the whole walk.
	}
}

// Iterate visits every non-removed node from head to tail, in order. It
// loads each node's next pointer before invoking body, so body may
// safely call Delete on the current node and iteration still advances;
// if body does so it must return false to stop, since the iterator has
// already stashed next and one further step is safe but compounding
// deletes beyond that is not. Iterate is not a consistent snapshot: a
// node inserted during iteration may or may not be observed, and a node
// marked removed during iteration is skipped from that point on.
// body returning false stops iteration early.
func (l *List[T]) Iterate(body func(n *Node[T]) bool) {
	cur := l.head.Load()
	for cur != nil {
		next := cur.next.Load()
		if !cur.removed.Load() {
			if !body(cur) {
				return
			}
		}
		cur = next
	}
}

// Find returns the first non-removed node whose Value satisfies match,
// or nil if none does.
func (l *List[T]) Find(match func(v T) bool) *Node[T] {
	var found *Node[T]
	l.Iterate(func(n *Node[T]) bool {
		if match(n.Value) {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountLive returns the number of non-removed nodes in l.
func (l *List[T]) CountLive() int {
	count := 0
	l.Iterate(func(*Node[T]) bool {
		count++
		return true
	})
	return count
}

// CountPending returns the number of nodes that are logically removed
// but still have a nonzero refcount, i.e. nodes Sweep would skip on its
// next pass because something still holds a reference to them.
func (l *List[T]) CountPending() int {
	pending := 0
	cur := l.head.Load()
	for cur != nil {
		next := cur.next.Load()
		if cur.removed.Load() && cur.refcount.Load() > 0 {
			pending++
		}
		cur = next
	}
	return pending
}

// Sweep walks l once, unlinking and releasing every node that is both
// logically removed and has a zero refcount. If finalize is non-nil, it
// is invoked exactly once per reaped node, on the sweeping goroutine,
// with exclusive access to the node (its refcount is zero and it is
// already unlinked); finalize must not re-enter l. Sweep returns the
// number of nodes reaped.
//
// On a losing repair CAS (a concurrent mutator raced this node), Sweep
// restarts the walk from head rather than attempting repair. This keeps
// the algorithm simple: a restart happens only after another goroutine
// has changed the link first. When the reaped node was the last one in
// the chain, Sweep also moves tail back to the surviving predecessor (nil
// if none survives) with a best-effort CAS. Sweep does not update the
// prev pointers of surviving nodes.
func (l *List[T]) Sweep(finalize func(n *Node[T])) int {
	reaped := 0
	var prev *Node[T]
	curr := l.head.Load()
	for curr != nil {
		next := curr.next.Load()
		removed := curr.removed.Load()
		refs := curr.refcount.Load()
		if removed && refs == 0 {
			var ok bool
			if prev != nil {
				ok = prev.next.CompareAndSwap(curr, next)
			} else {
				ok = l.head.CompareAndSwap(curr, next)
			}
			if ok {
				if next == nil {
					l.tail.CompareAndSwap(curr, prev)
				}
				if finalize != nil {
					finalize(curr)
				}
				reaped++
				curr = next
				continue
			}
			prev = nil
			curr = l.head.Load()
			continue
		}
		prev = curr
		curr = next
	}
	return reaped
}

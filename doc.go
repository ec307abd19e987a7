// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package lockfreelist implements a lock-free, intrusive, doubly linked
list with go1.23 generics, intended as a reusable concurrency primitive
for multi-producer / multi-consumer workloads: work queues,
active-connection tables, sweepable caches.

It provides non-blocking insertion at either end, O(1) logical removal,
safe traversal under concurrent mutation, and deferred physical
reclamation coordinated by a caller-maintained reference count.

See https://en.wikipedia.org/wiki/Non-blocking_linked_list and the
original C macro framework this package is a port of, mtekllc/lockfreelist.

Push-tail algorithm (CAS loop on tail, best-effort tail advance):

	loop
	   tail = List.tail
	   if tail == nil
	      if CAS(&List.head, nil, node): List.tail = node; node.prev = nil; return
	   else
	      if CAS(&tail.next, nil, node)
	         node.prev = tail
	         CAS(&List.tail, tail, node)   // advisory, a racing pusher may win this
	         return

Push-head algorithm (single-CAS critical section on head):

	loop
	   head = List.head
	   node.next = head
	   node.prev = nil
	   if CAS(&List.head, head, node): break
	if head != nil: head.prev = node
	else:           List.tail = node

Mark-removed is a single release store of true into node.removed: O(1),
non-blocking, never retries. The node stays chained; traversals skip it;
Sweep later reaps it once its refcount reaches zero.

Delete unlinks a node and releases its storage in one call, by CASing
the neighbor link fields it can reach through prev/next; each CAS is
best-effort and silently absorbed on failure, on the theory that a
concurrent operation has already moved past this node. Callers must
stop touching a node immediately after calling Delete on it.

Iterate is a live-node iterator: at each step it loads the current
node's next pointer into a local before invoking the caller's callback,
so the callback may safely Delete the current node and iteration still
advances; it skips any node whose removed flag is set. It is not a
consistent snapshot: a node inserted mid-iteration may or may not be
seen, and a node removed mid-iteration is skipped from that point on.

Sweep walks the chain once, unlinking and (optionally) finalizing every
node that is both logically removed and has a zero refcount; on a
losing CAS it restarts the walk from head rather than attempting
repair, which keeps the algorithm simple; a restart happens only after
another goroutine has changed that link first.

The list core never increments or decrements a node's refcount; that is
the caller's responsibility, composed via (*Node[T]).Acquire and
(*Guard[T]).Release. The core only reads refcount, during Sweep and
CountPending.
*/
package lockfreelist

// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfreelist

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Quantified invariant: for any finite sequence of PushTail(v1..vn) with
// no intervening operations, Iterate yields v1..vn in order.
func TestPropertyPushTailRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOf(rapid.IntRange(-1000, 1000)).Draw(t, "values")

		l := New[item]()
		for _, v := range values {
			l.PushTail(item{v})
		}

		var got []int
		l.Iterate(func(n *Node[item]) bool {
			got = append(got, n.Value.id)
			return true
		})

		require.Equal(t, values, got)
	})
}

// Quantified invariant: PushTail(v) followed immediately by PopTail on an
// otherwise empty list returns a node whose payload equals v and leaves
// the list empty.
func TestPropertyPushPopTailInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int().Draw(t, "v")

		l := New[item]()
		l.PushTail(item{v})
		n := l.PopTail()

		require.NotNil(t, n)
		require.Equal(t, v, n.Value.id)
		require.Nil(t, l.head.Load())
		require.Nil(t, l.tail.Load())
	})
}

// Quantified invariant: calling MarkRemoved twice on the same node is
// observationally equivalent to calling it once, and once called, no
// subsequent Iterate/Find/CountLive observes the node.
func TestPropertyMarkRemovedIdempotentAndMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfDistinct(rapid.IntRange(0, 10000), rapid.ID).Draw(t, "values")
		removeCalls := rapid.IntRange(1, 3).Draw(t, "removeCalls")

		if len(values) == 0 {
			return
		}

		l := New[item]()
		var nodes []*Node[item]
		for _, v := range values {
			nodes = append(nodes, l.PushTail(item{v}))
		}

		victim := rapid.IntRange(0, len(nodes)-1).Draw(t, "victim")
		for i := 0; i < removeCalls; i++ {
			l.MarkRemoved(nodes[victim])
		}

		require.True(t, nodes[victim].Removed())
		require.Equal(t, len(values)-1, l.CountLive())

		found := l.Find(func(v item) bool { return v.id == values[victim] })
		require.Nil(t, found)
	})
}

// Quantified invariant: every node reaped by Sweep was, at the moment its
// reap CAS succeeded, both removed and at zero refcount.
func TestPropertySweepOnlyReapsRemovedZeroRefcountNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")

		l := New[item]()
		var nodes []*Node[item]
		for i := 0; i < n; i++ {
			nodes = append(nodes, l.PushTail(item{i}))
		}

		eligible := map[int]bool{}
		for i, node := range nodes {
			if rapid.Bool().Draw(t, "removed") {
				l.MarkRemoved(node)
				if rapid.Bool().Draw(t, "zeroRefcount") {
					node.refcount.Store(0)
					eligible[i] = true
				} else {
					node.refcount.Store(1)
				}
			}
		}

		var reapedIDs []int
		l.Sweep(func(reaped *Node[item]) {
			reapedIDs = append(reapedIDs, reaped.Value.id)
		})

		for _, id := range reapedIDs {
			require.True(t, eligible[id], "sweep reaped node %d which was not removed+zero-refcount", id)
		}
		require.Equal(t, len(eligible), len(reapedIDs))
	})
}

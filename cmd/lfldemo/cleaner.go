// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"context"
	"time"

	"github.com/addrummond/heap"

	"github.com/mtekllc/lockfreelist/internal/obslog"
)

// reapCandidate is a logically-eligible node paired with its creation
// time, so the cleaner can order marking by age instead of by whatever
// order Iterate happens to visit nodes in.
type reapCandidate struct {
	n       *node
	created time.Time
}

// Cmp orders candidates oldest-first for heap.Min.
func (a *reapCandidate) Cmp(b *reapCandidate) int {
	return cmp.Compare(a.created.UnixNano(), b.created.UnixNano())
}

// runCleaner matches lfl_sample.c's cleaner_thread: on each tick it
// finds every live item older than lifetime, marks the oldest ones
// removed first, then sweeps. Sweep's own semantics (reap iff removed
// and refcount == 0) are untouched; the heap only orders the
// MarkRemoved calls that make a node eligible.
func runCleaner(ctx context.Context, list *workQueue, logger obslog.Logger, lifetime, sweepInterval time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			markAllForShutdown(list, logger)
			return
		case <-ticker.C:
			active := markExpired(list, logger, lifetime)

			reaped := list.Sweep(func(n *node) {
				logger.Debugf("sweep reaped id=%d age=%s", n.Value.id, time.Since(n.Value.created))
			})
			if reaped > 0 {
				logger.Infof("cleaner: reaped %d item(s), %d still active", reaped, active)
			}
		}
	}
}

func markExpired(list *workQueue, logger obslog.Logger, lifetime time.Duration) (active int) {
	now := time.Now()
	var candidates heap.Heap[reapCandidate, heap.Min]

	list.Iterate(func(n *node) bool {
		if now.Sub(n.Value.created) >= lifetime {
			heap.PushOrderable(&candidates, reapCandidate{n: n, created: n.Value.created})
		} else {
			active++
		}
		return true
	})

	for heap.Len(&candidates) > 0 {
		c, ok := heap.PopOrderable(&candidates)
		if !ok {
			break
		}
		list.MarkRemoved(c.n)
		logger.Debugf("cleaner: marked id=%d removed (age %s)", c.n.Value.id, now.Sub(c.created))
	}
	return active
}

// markAllForShutdown marks every remaining item removed regardless of
// age, so that main's post-shutdown Sweep reclaims the whole list
// instead of leaving still-young items logically live forever.
func markAllForShutdown(list *workQueue, logger obslog.Logger) {
	markExpired(list, logger, 0)
	logger.Debug("cleaner: marked all remaining items for shutdown")
}

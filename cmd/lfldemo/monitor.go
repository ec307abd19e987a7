// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/gammazero/deque"

	"github.com/mtekllc/lockfreelist/internal/obslog"
)

// trendWindow bounds how many recent CountLive samples runMonitor keeps
// around to print a rising/falling/flat trend alongside the
// instantaneous count.
const trendWindow = 5

// runMonitor prints periodic CountLive/CountPending snapshots, matching
// lfl_sample.c's monitor_thread, enriched with a short trend computed
// over a bounded deque.Deque window of recent samples.
func runMonitor(ctx context.Context, list *workQueue, logger obslog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var recent deque.Deque[int]

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			live := list.CountLive()
			pending := list.CountPending()

			recent.PushBack(live)
			if recent.Len() > trendWindow {
				recent.PopFront()
			}

			logger.Infof("monitor: %d queued items (%d pending cleanup, trend %s)",
				live, pending, trend(&recent))
		}
	}
}

func trend(recent *deque.Deque[int]) string {
	if recent.Len() < 2 {
		return "flat"
	}
	first := recent.At(0)
	last := recent.At(recent.Len() - 1)
	switch {
	case last > first:
		return "rising"
	case last < first:
		return "falling"
	default:
		return "flat"
	}
}

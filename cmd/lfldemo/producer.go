// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/mtekllc/lockfreelist/internal/obslog"
)

// runProducer repeatedly pushes a new work item at the head of list,
// matching lfl_sample.c's producer_thread: a tight loop with a small
// random delay between pushes, stopping when ctx is canceled.
func runProducer(ctx context.Context, list *workQueue, logger obslog.Logger, id int) {
	counter := 0
	for {
		select {
		case <-ctx.Done():
			logger.Debugf("producer %d stopping after %d items", id, counter)
			return
		default:
		}

		counter++
		list.PushHead(workItem{id: id*1_000_000 + counter, created: time.Now()})

		delay := time.Duration(1+rand.Intn(10)) * time.Millisecond
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lfldemo is a producer/monitor/cleaner demonstrator for the
// lockfreelist package, reinstating the original C sample program
// (lfl_sample.c) on top of the Go core's public operations only.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mtekllc/lockfreelist/internal/obslog"
)

// workItem is the demo payload, matching lfl_sample.c's node fields
// (int id; time_t created;).
type workItem struct {
	id      int
	created time.Time
}

func main() {
	var (
		producers       = flag.Int("producers", 2, "number of producer goroutines")
		itemLifetime    = flag.Duration("item-lifetime", 7*time.Second, "age at which a work item becomes eligible for removal")
		sweepInterval   = flag.Duration("sweep-interval", 500*time.Millisecond, "interval between cleaner passes")
		monitorInterval = flag.Duration("monitor-interval", time.Second, "interval between monitor snapshots")
		verbose         = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := obslog.InfoLevel
	if *verbose {
		level = obslog.DebugLevel
	}
	logger := obslog.New(level, os.Stdout)

	if *producers < 1 {
		logger.Fatalf("producers must be >= 1, got %d", *producers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	list := newWorkQueue()

	var wg sync.WaitGroup
	wg.Add(*producers + 2)

	for i := 0; i < *producers; i++ {
		go func(id int) {
			defer wg.Done()
			runProducer(ctx, list, logger, id)
		}(i)
	}
	go func() {
		defer wg.Done()
		runMonitor(ctx, list, logger, *monitorInterval)
	}()
	go func() {
		defer wg.Done()
		runCleaner(ctx, list, logger, *itemLifetime, *sweepInterval)
	}()

	logger.Infof("lfldemo running with %d producer(s); ctrl-c to stop", *producers)
	<-ctx.Done()
	logger.Info("stopping injection and waiting for cleanup")
	wg.Wait()

	reaped := list.Sweep(func(n *node) {
		logger.Debugf("final sweep reaped id=%d", n.Value.id)
	})
	fmt.Printf("lfldemo: %d items live, %d reaped on shutdown\n", list.CountLive(), reaped)
}

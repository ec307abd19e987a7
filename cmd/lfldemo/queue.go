// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import "github.com/mtekllc/lockfreelist"

type node = lockfreelist.Node[workItem]

type workQueue = lockfreelist.List[workItem]

func newWorkQueue() *workQueue {
	return lockfreelist.New[workItem]()
}

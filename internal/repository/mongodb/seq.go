package mongodb

import (
	"sync/atomic"
	"time"
)

var lastSeq atomic.Int64

// nextSeq returns a strictly increasing insertion sequence seeded from the
// wall clock, so documents keep insertion order across restarts.
func nextSeq() int64 {
	for {
		prev := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastSeq.CompareAndSwap(prev, next) {
			return next
		}
	}
}

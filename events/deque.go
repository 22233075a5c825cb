// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based event queue with any number
// of producers and a single consumer. The consumer blocks in [Queue.Wait]
// until an event is available. It must be initialized using [Queue.Init]
// before use.
type Queue struct {
	head   atomic.Pointer[queueEvent]
	tail   atomic.Pointer[queueEvent]
	len    atomic.Uint64
	notify chan struct{}
}

// Init initializes the queue.
func (q *Queue) Init() {
	head := &queueEvent{}
	q.head.Store(head)
	q.tail.Store(head)
	q.notify = make(chan struct{}, 1)
}

type queueEvent struct {
	next atomic.Pointer[queueEvent]
	v    Event
}

var queueEventPool = sync.Pool{
	New: func() any { return &queueEvent{} },
}

// NextEvent removes and returns the next event in the queue.
// It returns nil if the queue is empty.
func (q *Queue) NextEvent() Event {
	var first, last, firstnext *queueEvent
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return nil
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v := firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					first.v = nil
					queueEventPool.Put(first)
					return v
				}
			}
		}
	}
}

// Send adds an event to the end of the queue and wakes the consumer.
func (q *Queue) Send(ev Event) {
	i := queueEventPool.Get().(*queueEvent)
	i.next.Store(nil)
	i.v = ev

	var last, lastnext *queueEvent
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					break
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Wait blocks until the queue has an event and returns it, or
// returns the context error if ctx is done first.
func (q *Queue) Wait(ctx context.Context) (Event, error) {
	for {
		if ev := q.NextEvent(); ev != nil {
			return ev, nil
		}
		select {
		case <-q.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the length of the queue.
func (q *Queue) Len() uint64 {
	return q.len.Load()
}

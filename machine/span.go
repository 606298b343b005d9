// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

// Span is a pending sub-problem: the inclusive index range [Low, High] and a
// tag whose meaning depends on the algorithm (the radix bit, for example).
type Span struct {
	Low  int
	High int
	Tag  int
}

// Count returns the number of elements in the span.
func (s Span) Count() int {
	return s.High - s.Low + 1
}

// spanStack is a LIFO of pending spans.
type spanStack struct {
	items []Span
}

func (st *spanStack) push(s Span) { st.items = append(st.items, s) }

func (st *spanStack) pop() (Span, bool) {
	n := len(st.items)
	if n == 0 {
		return Span{}, false
	}
	s := st.items[n-1]
	st.items = st.items[:n-1]
	return s, true
}

func (st *spanStack) len() int { return len(st.items) }

// spanQueue is a FIFO of pending spans.
type spanQueue struct {
	items []Span
	head  int
}

func (q *spanQueue) push(s Span) { q.items = append(q.items, s) }

func (q *spanQueue) pop() (Span, bool) {
	if q.head >= len(q.items) {
		return Span{}, false
	}
	s := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return s, true
}

func (q *spanQueue) peek() (Span, bool) {
	if q.head >= len(q.items) {
		return Span{}, false
	}
	return q.items[q.head], true
}

func (q *spanQueue) len() int { return len(q.items) - q.head }

// pending returns the queued spans in order without copying.
func (q *spanQueue) pending() []Span { return q.items[q.head:] }

// checkSpan validates a span against the buffer before it is queued.
// Spans with fewer than min elements are dropped and reported as false.
func (c *core) checkSpan(op string, s Span, min int) bool {
	if s.Low > s.High+1 {
		c.fail(op, "span [%d, %d] has low > high+1", s.Low, s.High)
	}
	if s.Count() > 0 && (s.Low < 0 || s.High >= len(c.data)) {
		c.fail(op, "span [%d, %d] outside buffer of %d", s.Low, s.High, len(c.data))
	}
	return s.Count() >= min
}

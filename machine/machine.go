// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// Machine is a resumable algorithm that advances one unit of work per call.
//
// A Machine is NOT safe for concurrent use. It exclusively owns its buffers.
type Machine interface {
	// Algorithm returns the catalog key, e.g. "quick".
	Algorithm() string

	// Title returns the human readable algorithm caption.
	Title() string

	// Name returns the dataset label shown in the caption.
	Name() string

	// Len returns the number of keys being sorted or rotated.
	Len() int

	// Draw renders the current state without advancing.
	// A nil surface is ignored.
	Draw(frame int, s surface.Surface)

	// Advance draws the current state onto s (if s is non-nil) and then
	// performs the next unit of work. It returns true while work remains.
	// Once terminal, Advance returns false and the terminal error, which is
	// nil on success, without mutating anything.
	Advance(frame int, s surface.Surface) (bool, error)

	// Counters returns a snapshot of the instrumentation counters.
	Counters() Counters

	// Data returns the buffer currently holding the result. For
	// out-of-place algorithms this is the current source buffer.
	Data() []byte

	// Done reports whether the machine is terminal.
	Done() bool

	// LastKey returns the last key touched by a data primitive.
	LastKey() byte
}

// stepper is implemented by every algorithm embedding core.
type stepper interface {
	// step performs one unit of work and calls finish when there is none left.
	step()

	// draw renders the algorithm specific view.
	draw(frame int, s surface.Surface)
}

// core is the state shared by all machines: the owned buffers, counters and
// the data primitives every algorithm routes its accesses through.
type core struct {
	info Info
	name string

	data []byte // primary buffer, the source for two-buffer algorithms
	aux  []byte // second buffer, nil for in-place algorithms

	counters Counters
	lastKey  byte

	done bool
	err  error

	impl    stepper
	printer *message.Printer
}

func newCore(info Info, name string, data []byte) core {
	owned := make([]byte, len(data))
	copy(owned, data)
	return core{
		info:    info,
		name:    name,
		data:    owned,
		printer: message.NewPrinter(language.English),
	}
}

// withAux allocates the second buffer.
func (c *core) withAux() {
	c.aux = make([]byte, len(c.data))
}

// Algorithm returns the catalog key.
func (c *core) Algorithm() string { return c.info.Key }

// Title returns the algorithm caption.
func (c *core) Title() string { return c.info.Title }

// Name returns the dataset label.
func (c *core) Name() string { return c.name }

// Len returns the number of keys.
func (c *core) Len() int { return len(c.data) }

// Counters returns a snapshot of the counters.
func (c *core) Counters() Counters { return c.counters }

// Data returns the buffer holding the result.
func (c *core) Data() []byte { return c.data }

// Done reports whether the machine is terminal.
func (c *core) Done() bool { return c.done }

// LastKey returns the last key touched by a primitive.
func (c *core) LastKey() byte { return c.lastKey }

func (c *core) finish() { c.done = true }

func (c *core) sprintf(format string, args ...any) string {
	return c.printer.Sprintf(format, args...)
}

// Draw renders the current state without advancing.
func (c *core) Draw(frame int, s surface.Surface) {
	if s == nil {
		return
	}
	c.impl.draw(frame, s)
	c.frameLabel(frame, s)
}

// Advance draws and then runs one step.
func (c *core) Advance(frame int, s surface.Surface) (more bool, err error) {
	if c.done {
		return false, c.err
	}

	c.Draw(frame, s)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*InvariantError)
		if !ok {
			panic(r)
		}
		c.done = true
		c.err = ie
		more, err = false, ie
		sortreel.Component("machine").Warn("machine aborted",
			"algorithm", c.info.Key,
			"frame", frame,
			"steps", c.counters.Steps,
			"err", ie)
	}()

	c.impl.step()
	c.counters.Steps++
	return !c.done, nil
}

// check panics with an InvariantError if i is not a valid index of buf.
func (c *core) check(op string, buf []byte, i int) {
	if i < 0 || i >= len(buf) {
		c.fail(op, "index %d out of range [0, %d)", i, len(buf))
	}
}

// compare reports data[i] < data[j].
func (c *core) compare(i, j int) bool {
	c.check("compare", c.data, i)
	c.check("compare", c.data, j)
	c.counters.Compares++
	c.lastKey = c.data[i]
	return c.data[i] < c.data[j]
}

// less reports data[i] < v.
func (c *core) less(i int, v byte) bool {
	c.check("less", c.data, i)
	c.counters.Compares++
	c.lastKey = c.data[i]
	return c.data[i] < v
}

// more reports data[i] > v.
func (c *core) more(i int, v byte) bool {
	c.check("more", c.data, i)
	c.counters.Compares++
	c.lastKey = c.data[i]
	return c.data[i] > v
}

// compareKeys reports a < b for keys already held outside the buffers.
func (c *core) compareKeys(a, b byte) bool {
	c.counters.Compares++
	c.lastKey = a
	return a < b
}

// copy moves data[src] to data[dst].
func (c *core) copy(dst, src int) {
	c.check("copy", c.data, dst)
	c.check("copy", c.data, src)
	c.counters.Copies++
	c.data[dst] = c.data[src]
	c.lastKey = c.data[dst]
}

// copyOut moves data[src] to aux[dst].
func (c *core) copyOut(dst, src int) {
	c.check("copy", c.aux, dst)
	c.check("copy", c.data, src)
	c.counters.Copies++
	c.aux[dst] = c.data[src]
	c.lastKey = c.aux[dst]
}

// copyBack moves aux[src] to data[dst].
func (c *core) copyBack(dst, src int) {
	c.check("copy", c.data, dst)
	c.check("copy", c.aux, src)
	c.counters.Copies++
	c.data[dst] = c.aux[src]
	c.lastKey = c.data[dst]
}

// load reads data[i] into a temporary.
func (c *core) load(i int) byte {
	c.check("load", c.data, i)
	c.counters.Copies++
	c.lastKey = c.data[i]
	return c.data[i]
}

// store writes a temporary into data[i].
func (c *core) store(i int, v byte) {
	c.check("store", c.data, i)
	c.counters.Copies++
	c.data[i] = v
	c.lastKey = v
}

// swap exchanges data[i] and data[j] through a temporary.
func (c *core) swap(i, j int) {
	c.cycle(i, j)
}

// cycle moves each listed cell to its predecessor through a temporary:
// data[idx[0]] = data[idx[1]], ..., data[idx[n-1]] = old data[idx[0]].
// It counts n+1 copies and one swap; swap is the two cell case.
func (c *core) cycle(idx ...int) {
	if len(idx) < 2 {
		c.fail("swap", "cycle of %d cells", len(idx))
	}
	for _, i := range idx {
		c.check("swap", c.data, i)
	}
	tmp := c.data[idx[0]]
	for k := 0; k < len(idx)-1; k++ {
		c.data[idx[k]] = c.data[idx[k+1]]
	}
	c.data[idx[len(idx)-1]] = tmp
	c.counters.Copies += len(idx) + 1
	c.counters.Swaps++
	c.lastKey = tmp
}

// inspect reports whether the given bit of data[i] is set.
func (c *core) inspect(i, bit int) bool {
	c.check("inspect", c.data, i)
	if bit < 0 || bit > 7 {
		c.fail("inspect", "bit %d out of range [0, 7]", bit)
	}
	c.counters.Inspections++
	c.lastKey = c.data[i]
	return (c.data[i]>>bit)&1 == 1
}

// swapBuffers exchanges the roles of the source and destination buffers.
func (c *core) swapBuffers() {
	if c.aux == nil {
		c.fail("swapBuffers", "machine has a single buffer")
	}
	c.data, c.aux = c.aux, c.data
	c.counters.BufferSwaps++
}

// swapKeys exchanges two keys held outside the buffers.
func (c *core) swapKeys(a, b *byte) {
	*a, *b = *b, *a
	c.counters.Copies += 3
	c.counters.Swaps++
	c.lastKey = *a
}

// moveKey copies a key held outside the buffers.
func (c *core) moveKey(dst *byte, v byte) {
	*dst = v
	c.counters.Copies++
	c.lastKey = v
}

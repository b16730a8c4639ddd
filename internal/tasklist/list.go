// Package tasklist implements the ordered task sequence backing the
// board: a doubly-linked list stored in an arena, addressed through
// stable opaque handles, with an in-place stable merge sort.
package tasklist

import (
	"errors"
	"fmt"
	"iter"

	"github.com/jaydenyuan326/todo/internal/task"
)

// ErrNotFound reports a stale or unknown handle.
var ErrNotFound = errors.New("task not found")

// none marks the absence of a neighbor link.
const none = -1

// Handle is an opaque stable reference to one task in a List. It stays
// valid across reordering and stays invalid forever once the task it
// refers to is removed.
type Handle struct {
	idx int
	gen uint32
}

// node wraps one record with its arena links. prev and next are arena
// indices, never pointers, so a stale handle cannot dereference freed
// memory; the generation counter catches slot reuse.
type node struct {
	rec  task.Record
	prev int
	next int
	gen  uint32
	used bool
}

// List is a doubly-linked sequence of task records. It owns its nodes
// exclusively and is not safe for concurrent mutation.
type List struct {
	nodes  []node
	head   int
	tail   int
	free   []int
	length int
}

// New returns an empty list.
func New() *List {
	return &List{head: none, tail: none}
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	return l.length
}

// lookup resolves h to its node, or fails with ErrNotFound.
func (l *List) lookup(h Handle) (*node, error) {
	if h.idx < 0 || h.idx >= len(l.nodes) {
		return nil, fmt.Errorf("%w: handle out of range", ErrNotFound)
	}
	n := &l.nodes[h.idx]
	if !n.used || n.gen != h.gen {
		return nil, fmt.Errorf("%w: stale handle", ErrNotFound)
	}
	return n, nil
}

// alloc returns a free arena slot, growing the arena if needed.
func (l *List) alloc() int {
	if k := len(l.free); k > 0 {
		idx := l.free[k-1]
		l.free = l.free[:k-1]
		return idx
	}
	l.nodes = append(l.nodes, node{})
	return len(l.nodes) - 1
}

// Append inserts rec at the tail and returns a handle to it.
func (l *List) Append(rec task.Record) Handle {
	idx := l.alloc()
	n := &l.nodes[idx]
	n.rec = rec
	n.prev = l.tail
	n.next = none
	n.used = true

	if l.tail != none {
		l.nodes[l.tail].next = idx
	} else {
		l.head = idx
	}
	l.tail = idx
	l.length++
	return Handle{idx: idx, gen: n.gen}
}

// Remove unlinks the task h refers to and returns its record. The
// handle is dead afterwards; any further use fails with ErrNotFound.
func (l *List) Remove(h Handle) (task.Record, error) {
	n, err := l.lookup(h)
	if err != nil {
		return task.Record{}, err
	}

	if n.prev != none {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != none {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}

	rec := n.rec
	n.rec = task.Record{}
	n.prev = none
	n.next = none
	n.used = false
	n.gen++
	l.free = append(l.free, h.idx)
	l.length--
	return rec, nil
}

// Record returns a copy of the record h refers to.
func (l *List) Record(h Handle) (task.Record, error) {
	n, err := l.lookup(h)
	if err != nil {
		return task.Record{}, err
	}
	return n.rec, nil
}

// Update applies fn to the record h refers to.
func (l *List) Update(h Handle, fn func(*task.Record)) error {
	n, err := l.lookup(h)
	if err != nil {
		return err
	}
	fn(&n.rec)
	return nil
}

// MoveColumn advances the task to col. Backward and sideways moves
// fail with task.ErrInvalidTransition; a stale handle fails with
// ErrNotFound.
func (l *List) MoveColumn(h Handle, col task.Column) error {
	n, err := l.lookup(h)
	if err != nil {
		return err
	}
	return n.rec.MoveTo(col)
}

// Forward yields handles and records from head to tail. The sequence
// is lazy and restartable; the list must not be structurally mutated
// while a traversal is in progress.
func (l *List) Forward() iter.Seq2[Handle, task.Record] {
	return func(yield func(Handle, task.Record) bool) {
		for i := l.head; i != none; i = l.nodes[i].next {
			n := &l.nodes[i]
			if !yield(Handle{idx: i, gen: n.gen}, n.rec) {
				return
			}
		}
	}
}

// Reverse yields handles and records from tail to head.
func (l *List) Reverse() iter.Seq2[Handle, task.Record] {
	return func(yield func(Handle, task.Record) bool) {
		for i := l.tail; i != none; i = l.nodes[i].prev {
			n := &l.nodes[i]
			if !yield(Handle{idx: i, gen: n.gen}, n.rec) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the records in link order, for display,
// persistence, or handing to the deadline scanner.
func (l *List) Snapshot() []task.Record {
	out := make([]task.Record, 0, l.length)
	for i := l.head; i != none; i = l.nodes[i].next {
		out = append(out, l.nodes[i].rec)
	}
	return out
}

// Handles returns the live handles in link order.
func (l *List) Handles() []Handle {
	out := make([]Handle, 0, l.length)
	for i := l.head; i != none; i = l.nodes[i].next {
		out = append(out, Handle{idx: i, gen: l.nodes[i].gen})
	}
	return out
}

// ReplaceOrder relinks the sequence to match order, which must contain
// every live handle exactly once. Node identity is untouched, so
// handles held elsewhere stay valid.
func (l *List) ReplaceOrder(order []Handle) error {
	if len(order) != l.length {
		return fmt.Errorf("replace order: got %d handles, list has %d tasks", len(order), l.length)
	}
	seen := make(map[int]bool, len(order))
	for _, h := range order {
		if _, err := l.lookup(h); err != nil {
			return err
		}
		if seen[h.idx] {
			return fmt.Errorf("replace order: duplicate handle")
		}
		seen[h.idx] = true
	}

	l.head = none
	l.tail = none
	for _, h := range order {
		n := &l.nodes[h.idx]
		n.prev = l.tail
		n.next = none
		if l.tail != none {
			l.nodes[l.tail].next = h.idx
		} else {
			l.head = h.idx
		}
		l.tail = h.idx
	}
	return nil
}

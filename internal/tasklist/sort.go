package tasklist

import (
	"github.com/jaydenyuan326/todo/internal/task"
)

// Direction selects ascending or descending key order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// CompareFunc orders two records for sorting. Negative means a sorts
// before b, zero means the pre-sort order is kept.
type CompareFunc func(a, b task.Record) int

// ByPriority orders records by urgency. Ascending urgency puts High
// first, the board's default.
func ByPriority(dir Direction) CompareFunc {
	return func(a, b task.Record) int {
		d := b.Priority.Rank() - a.Priority.Rank()
		if dir == Descending {
			d = -d
		}
		return d
	}
}

// ByDueDate orders records chronologically. Records without a due date
// sort after all dated records regardless of direction.
func ByDueDate(dir Direction) CompareFunc {
	return func(a, b task.Record) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		d := a.DueDate.Compare(*b.DueDate)
		if dir == Descending {
			d = -d
		}
		return d
	}
}

// Sort reorders the list in place with a merge sort over the arena
// links: slow/fast split, recursive halves, stable merge. No nodes are
// allocated and every handle stays valid. Empty and single-element
// lists are left alone.
func (l *List) Sort(cmp CompareFunc) {
	if l.length < 2 {
		return
	}
	l.head = l.mergeSort(l.head, cmp)

	// The merge maintains next links only; rebuild prev and tail in
	// one pass.
	prev := none
	for i := l.head; i != none; i = l.nodes[i].next {
		l.nodes[i].prev = prev
		prev = i
	}
	l.tail = prev
}

func (l *List) mergeSort(head int, cmp CompareFunc) int {
	if head == none || l.nodes[head].next == none {
		return head
	}
	left, right := l.split(head)
	left = l.mergeSort(left, cmp)
	right = l.mergeSort(right, cmp)
	return l.merge(left, right, cmp)
}

// split severs the chain at the midpoint found by advancing a slow
// cursor one node and a fast cursor two nodes per step.
func (l *List) split(head int) (int, int) {
	slow := head
	fast := l.nodes[head].next
	for fast != none {
		fast = l.nodes[fast].next
		if fast != none {
			slow = l.nodes[slow].next
			fast = l.nodes[fast].next
		}
	}
	second := l.nodes[slow].next
	l.nodes[slow].next = none
	return head, second
}

// merge splices two sorted chains into one. Ties take the left chain's
// element, which is what keeps the sort stable.
func (l *List) merge(a, b int, cmp CompareFunc) int {
	head := none
	tail := none
	appendNode := func(i int) {
		if tail == none {
			head = i
		} else {
			l.nodes[tail].next = i
		}
		tail = i
	}

	for a != none && b != none {
		if cmp(l.nodes[a].rec, l.nodes[b].rec) <= 0 {
			next := l.nodes[a].next
			appendNode(a)
			a = next
		} else {
			next := l.nodes[b].next
			appendNode(b)
			b = next
		}
	}
	// One side is empty; the other is already chained in order.
	rest := a
	if rest == none {
		rest = b
	}
	if rest != none {
		if tail == none {
			head = rest
		} else {
			l.nodes[tail].next = rest
		}
	}
	return head
}

package thread

// link is one embedded linkage slot in a Thread record. A Thread has two of
// these (globalLink, queueLink in thread.go) so it can sit in the global
// list and in exactly one of {ready queue, a wait-queue, zombie list}
// simultaneously, per spec.md §3's "two linkage slots" requirement. This is
// an intrusive list: the node lives inside the Thread, not in a separate
// container record, so enqueue/dequeue never allocates.
type link struct {
	next *Thread
	prev *Thread
}

// list is an intrusive FIFO of Threads threaded through one of their two
// link fields, selected by sel. head/tail are nil when empty.
type list struct {
	head, tail *Thread
	sel        func(*Thread) *link
}

func newList(sel func(*Thread) *link) *list {
	return &list{sel: sel}
}

func (l *list) empty() bool { return l.head == nil }

// pushBack appends t, which must not currently be linked into this list.
func (l *list) pushBack(t *Thread) {
	ln := l.sel(t)
	ln.next = nil
	ln.prev = l.tail
	if l.tail != nil {
		l.sel(l.tail).next = t
	} else {
		l.head = t
	}
	l.tail = t
}

// popFront removes and returns the head, or nil if empty.
func (l *list) popFront() *Thread {
	t := l.head
	if t == nil {
		return nil
	}
	l.remove(t)
	return t
}

// remove unlinks t from the list. t must currently be a member.
func (l *list) remove(t *Thread) {
	ln := l.sel(t)
	if ln.prev != nil {
		l.sel(ln.prev).next = ln.next
	} else {
		l.head = ln.next
	}
	if ln.next != nil {
		l.sel(ln.next).prev = ln.prev
	} else {
		l.tail = ln.prev
	}
	ln.next, ln.prev = nil, nil
}

// each calls fn for every member, head to tail. fn must not mutate the
// list; callers that need to remove while iterating should snapshot first.
func (l *list) each(fn func(*Thread)) {
	for t := l.head; t != nil; t = l.sel(t).next {
		fn(t)
	}
}

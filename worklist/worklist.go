// Package worklist provides the abstract bag of pending items the
// saturation engine and path-summary fixpoint drain (spec §4.2). No
// ordering is guaranteed; convergence only requires every item put is
// eventually got, which holds because combine is idempotent and extend
// distributes over it.
package worklist

// Queued is implemented by items a Worklist can deduplicate on Put
// without scanning: each item tracks its own "currently queued" flag.
type Queued interface {
	// OnWorklist reports whether the item is currently queued.
	OnWorklist() bool
	// SetOnWorklist updates the queued flag.
	SetOnWorklist(bool)
}

// Worklist is an abstract bag of pending items of type T.
type Worklist[T Queued] interface {
	// Put enqueues item, unless it is already queued.
	Put(item T)
	// Get dequeues and returns one item. It must not be called when
	// Empty reports true.
	Get() T
	// Empty reports whether the worklist has no pending items.
	Empty() bool
	// Clear discards every pending item, unmarking each as queued.
	Clear()
}

// FIFO is a Worklist realized as a first-in-first-out queue.
type FIFO[T Queued] struct {
	items []T
}

// NewFIFO returns an empty FIFO worklist.
func NewFIFO[T Queued]() *FIFO[T] {
	return &FIFO[T]{}
}

// Put enqueues item at the back, unless already queued.
func (w *FIFO[T]) Put(item T) {
	if item.OnWorklist() {
		return
	}
	item.SetOnWorklist(true)
	w.items = append(w.items, item)
}

// Get dequeues the oldest item.
func (w *FIFO[T]) Get() T {
	item := w.items[0]
	w.items = w.items[1:]
	item.SetOnWorklist(false)
	return item
}

// Empty reports whether the queue has no pending items.
func (w *FIFO[T]) Empty() bool {
	return len(w.items) == 0
}

// Clear discards every pending item.
func (w *FIFO[T]) Clear() {
	for _, item := range w.items {
		item.SetOnWorklist(false)
	}
	w.items = nil
}

// LIFO is a Worklist realized as a last-in-first-out stack.
type LIFO[T Queued] struct {
	items []T
}

// NewLIFO returns an empty LIFO worklist.
func NewLIFO[T Queued]() *LIFO[T] {
	return &LIFO[T]{}
}

// Put pushes item, unless already queued.
func (w *LIFO[T]) Put(item T) {
	if item.OnWorklist() {
		return
	}
	item.SetOnWorklist(true)
	w.items = append(w.items, item)
}

// Get pops the most recently pushed item.
func (w *LIFO[T]) Get() T {
	n := len(w.items) - 1
	item := w.items[n]
	w.items = w.items[:n]
	item.SetOnWorklist(false)
	return item
}

// Empty reports whether the stack has no pending items.
func (w *LIFO[T]) Empty() bool {
	return len(w.items) == 0
}

// Clear discards every pending item.
func (w *LIFO[T]) Clear() {
	for _, item := range w.items {
		item.SetOnWorklist(false)
	}
	w.items = nil
}

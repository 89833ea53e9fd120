package list

import (
	"errors"
	"fmt"
	"iter"
	"unsafe"
)

var (
	// ErrParameter is returned for a nil or destroyed list, or a negative index.
	ErrParameter = errors.New("invalid list parameter")

	// ErrAllocation is returned when a new node cannot be added because the
	// list has reached its configured limit.
	ErrAllocation = errors.New("list allocation failed")

	// ErrNotFound is returned when an index is beyond the current count.
	ErrNotFound = errors.New("list index not found")
)

// DestroyFunc releases whatever an element refers to. It must not retain the
// element after returning.
type DestroyFunc[T any] func(T) error

type node[T any] struct {
	data T
	next *node[T]
}

// List is a singly-linked list of values of type T. Each appended value is
// copied into a node owned by the list. The list is not safe for concurrent
// use.
type List[T any] struct {
	count     int
	limit     int
	destroy   DestroyFunc[T]
	first     *node[T]
	last      *node[T]
	destroyed bool
}

// Option configures a List at creation time.
type Option[T any] func(*List[T])

// WithDestroy installs the hook called once for each element discarded by
// Clear, RemoveAt or Destroy.
func WithDestroy[T any](fn func(T) error) Option[T] {
	return func(l *List[T]) {
		l.destroy = fn
	}
}

// WithLimit caps the number of elements; zero means unbounded.
func WithLimit[T any](n int) Option[T] {
	return func(l *List[T]) {
		if n > 0 {
			l.limit = n
		}
	}
}

// New creates an empty list.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *List[T]) check() error {
	if l == nil {
		return fmt.Errorf("%w: nil list", ErrParameter)
	}
	if l.destroyed {
		return fmt.Errorf("%w: list has been destroyed", ErrParameter)
	}
	return nil
}

// ElementSize reports the in-memory width of one element.
func (l *List[T]) ElementSize() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Count returns the number of elements, or 0 for a nil or destroyed list.
func (l *List[T]) Count() int {
	if l.check() != nil {
		return 0
	}
	return l.count
}

// Append copies v into a new node at the tail of the list.
func (l *List[T]) Append(v T) error {
	if err := l.check(); err != nil {
		return err
	}
	if l.limit > 0 && l.count >= l.limit {
		return fmt.Errorf("%w: limit of %d elements reached", ErrAllocation, l.limit)
	}
	n := &node[T]{data: v}
	if l.last == nil {
		l.first = n
	} else {
		l.last.next = n
	}
	l.last = n
	l.count++
	return nil
}

// Clear discards every element in append order, calling the destroy hook
// once for each. The list is empty afterwards even if some hooks failed; their
// errors are joined into the result.
func (l *List[T]) Clear() error {
	if err := l.check(); err != nil {
		return err
	}
	var errs []error
	for n := l.first; n != nil; {
		next := n.next
		if err := l.release(n); err != nil {
			errs = append(errs, err)
		}
		n = next
	}
	l.first = nil
	l.last = nil
	l.count = 0
	return errors.Join(errs...)
}

func (l *List[T]) release(n *node[T]) error {
	var err error
	if l.destroy != nil {
		err = l.destroy(n.data)
	}
	var zero T
	n.data = zero
	n.next = nil
	return err
}

// Destroy clears the list and invalidates the handle. Later calls on the
// handle report ErrParameter, except Destroy itself which is a no-op.
func (l *List[T]) Destroy() error {
	if l == nil || l.destroyed {
		return nil
	}
	err := l.Clear()
	l.destroyed = true
	return err
}

// Traverse calls visit for each element in append order. The first error
// returned by visit stops the traversal. visit must not modify the list.
func (l *List[T]) Traverse(visit func(T) error) error {
	if err := l.check(); err != nil {
		return err
	}
	if visit == nil {
		return fmt.Errorf("%w: nil visitor", ErrParameter)
	}
	i := 0
	for n := l.first; n != nil; n = n.next {
		if err := visit(n.data); err != nil {
			return fmt.Errorf("visiting element %d: %w", i, err)
		}
		i++
	}
	return nil
}

func (l *List[T]) nodeAt(index int) (*node[T], error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrParameter, index)
	}
	if index >= l.count {
		return nil, fmt.Errorf("%w: index %d, count %d", ErrNotFound, index, l.count)
	}
	n := l.first
	for ; index > 0; index-- {
		n = n.next
	}
	return n, nil
}

// At returns a reference to the element stored at index. The reference is
// only valid until the element is removed, cleared or destroyed.
func (l *List[T]) At(index int) (*T, error) {
	n, err := l.nodeAt(index)
	if err != nil {
		return nil, err
	}
	return &n.data, nil
}

// Get returns a copy of the element stored at index.
func (l *List[T]) Get(index int) (T, error) {
	n, err := l.nodeAt(index)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.data, nil
}

// RemoveAt unlinks the element at index and passes it to the destroy hook.
// The element is unlinked even if the hook fails.
func (l *List[T]) RemoveAt(index int) error {
	n, err := l.nodeAt(index)
	if err != nil {
		return err
	}
	if index == 0 {
		l.first = n.next
		if l.first == nil {
			l.last = nil
		}
	} else {
		prev := l.first
		for i := 1; i < index; i++ {
			prev = prev.next
		}
		prev.next = n.next
		if l.last == n {
			l.last = prev
		}
	}
	l.count--
	return l.release(n)
}

// Items returns a copy of the elements in append order.
func (l *List[T]) Items() []T {
	if l.check() != nil {
		return nil
	}
	items := make([]T, 0, l.count)
	for n := l.first; n != nil; n = n.next {
		items = append(items, n.data)
	}
	return items
}

// All iterates over index/element pairs in append order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l.check() != nil {
			return
		}
		i := 0
		for n := l.first; n != nil; n = n.next {
			if !yield(i, n.data) {
				return
			}
			i++
		}
	}
}

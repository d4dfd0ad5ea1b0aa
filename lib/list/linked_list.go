package list

import (
	"github.com/benz9527/xrbtree/lib/infra"
)

var _ LinkedList[struct{}] = (*doublyLinkedList[struct{}])(nil) // Type check assertion

// The root is a sentinel element, root.next is the head
// and root.prev is the tail. An empty list links the root
// to itself.
type doublyLinkedList[T comparable] struct {
	root *NodeElement[T]
	len  int64
}

func NewLinkedList[T comparable]() LinkedList[T] {
	return new(doublyLinkedList[T]).init()
}

func (l *doublyLinkedList[T]) init() *doublyLinkedList[T] {
	l.root = &NodeElement[T]{
		listRef: l,
	}
	l.root.next = l.root
	l.root.prev = l.root
	l.len = 0
	return l
}

func (l *doublyLinkedList[T]) Len() int64 {
	return l.len
}

func (l *doublyLinkedList[T]) isEmpty() bool {
	return l == nil || l.root == nil || l.len == 0
}

// insertAfter links the newE next to the at element.
func (l *doublyLinkedList[T]) insertAfter(newE, at *NodeElement[T]) *NodeElement[T] {
	newE.listRef = l
	newE.prev = at
	newE.next = at.next
	at.next.prev = newE
	at.next = newE
	l.len++
	return newE
}

func (l *doublyLinkedList[T]) unlink(at *NodeElement[T]) *NodeElement[T] {
	at.prev.next = at.next
	at.next.prev = at.prev
	// avoid memory leaks
	at.listRef = nil
	at.next = nil
	at.prev = nil
	l.len--
	return at
}

func (l *doublyLinkedList[T]) AppendValue(values ...T) []*NodeElement[T] {
	if l == nil || l.root == nil || len(values) <= 0 {
		return nil
	}

	newElements := make([]*NodeElement[T], 0, len(values))
	for _, v := range values {
		newElements = append(newElements, l.insertAfter(newNodeElement(v, l), l.root.prev))
	}
	return newElements
}

func (l *doublyLinkedList[T]) Front() *NodeElement[T] {
	if l.isEmpty() {
		return nil
	}
	return l.root.next
}

func (l *doublyLinkedList[T]) Back() *NodeElement[T] {
	if l.isEmpty() {
		return nil
	}
	return l.root.prev
}

func (l *doublyLinkedList[T]) PushFront(v T) *NodeElement[T] {
	if l == nil || l.root == nil {
		return nil
	}
	return l.insertAfter(newNodeElement(v, l), l.root)
}

func (l *doublyLinkedList[T]) PushBack(v T) *NodeElement[T] {
	if l == nil || l.root == nil {
		return nil
	}
	return l.insertAfter(newNodeElement(v, l), l.root.prev)
}

func (l *doublyLinkedList[T]) PopFront() *NodeElement[T] {
	if l.isEmpty() {
		return nil
	}
	return l.unlink(l.root.next)
}

func (l *doublyLinkedList[T]) PopBack() *NodeElement[T] {
	if l.isEmpty() {
		return nil
	}
	return l.unlink(l.root.prev)
}

func (l *doublyLinkedList[T]) Remove(targetE *NodeElement[T]) *NodeElement[T] {
	if l.isEmpty() || targetE == nil || targetE == l.root ||
		targetE.listRef != l || targetE.prev == nil || targetE.next == nil {
		return nil
	}
	return l.unlink(targetE)
}

// Foreach, allows remove linked list elements while iterating.
func (l *doublyLinkedList[T]) Foreach(fn func(idx int64, e *NodeElement[T]) error) error {
	if l.isEmpty() || fn == nil {
		return infra.NewErrorStack("[doubly-linked-list] empty")
	}

	var (
		iterator       = l.root.next
		idx      int64 = 0
	)
	for iterator != l.root {
		n := iterator.next
		if err := fn(idx, iterator); err != nil {
			return err
		}
		iterator = n
		idx++
	}
	return nil
}

// ReverseForeach, allows remove linked list elements while iterating.
func (l *doublyLinkedList[T]) ReverseForeach(fn func(idx int64, e *NodeElement[T])) {
	if l.isEmpty() || fn == nil {
		return
	}

	var (
		iterator       = l.root.prev
		idx      int64 = 0
	)
	for iterator != l.root {
		p := iterator.prev
		fn(idx, iterator)
		iterator = p
		idx++
	}
}

func (l *doublyLinkedList[T]) FindFirst(targetV T, compareFn ...func(e *NodeElement[T]) bool) (*NodeElement[T], bool) {
	if l.isEmpty() {
		return nil, false
	}

	if len(compareFn) <= 0 || compareFn[0] == nil {
		compareFn = []func(e *NodeElement[T]) bool{
			func(e *NodeElement[T]) bool {
				return e.Value == targetV
			},
		}
	}

	for iterator := l.root.next; iterator != l.root; iterator = iterator.next {
		if compareFn[0](iterator) {
			return iterator, true
		}
	}
	return nil, false
}

package list

// Note that the doubly linked list is not thread safe.
// It serves as the FIFO queue (PushBack + PopFront) or the
// LIFO stack (PushBack + PopBack) of the tree traversals.

// LinkedList is the doubly linked list interface.
type LinkedList[T comparable] interface {
	Len() int64
	// AppendValue appends the values to the back of list l and returns the new elements.
	AppendValue(values ...T) []*NodeElement[T]
	// Front returns the first element of list l or nil if the list is empty.
	Front() *NodeElement[T]
	// Back returns the last element of list l or nil if the list is empty.
	Back() *NodeElement[T]
	// PushFront inserts a new element with value v at the front of list l and returns it.
	PushFront(v T) *NodeElement[T]
	// PushBack inserts a new element with value v at the back of list l and returns it.
	PushBack(v T) *NodeElement[T]
	// PopFront removes the first element and returns it or nil if the list is empty.
	PopFront() *NodeElement[T]
	// PopBack removes the last element and returns it or nil if the list is empty.
	PopBack() *NodeElement[T]
	// Remove removes targetE from l if targetE is an element of list l and returns targetE.
	// It returns nil if targetE is not an element of l.
	Remove(targetE *NodeElement[T]) *NodeElement[T]
	// Foreach traverses the list l and executes function fn for each element.
	// If fn returns an error, the traversal stops and returns the error.
	Foreach(fn func(idx int64, e *NodeElement[T]) error) error
	// ReverseForeach iterates the list in reverse order.
	ReverseForeach(fn func(idx int64, e *NodeElement[T]))
	// FindFirst finds the first element that satisfies the compareFn and returns the element and true if found.
	// If compareFn is not provided, the values are compared by ==.
	FindFirst(v T, compareFn ...func(e *NodeElement[T]) bool) (*NodeElement[T], bool)
}

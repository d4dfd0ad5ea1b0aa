package tree

import (
	"errors"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

var (
	ErrNilNode           = errors.New("[rbtree] nil node")
	ErrForeignNode       = errors.New("[rbtree] node is not created by this package")
	ErrNodeAlreadyLinked = errors.New("[rbtree] node has been linked into a tree")
	ErrNodeNotFound      = errors.New("[rbtree] node not found in this tree")
	ErrEmptyTree         = errors.New("[rbtree] empty tree")
)

// RBNode is the read only view of a tree node.
// The absent links are returned as untyped nil.
type RBNode[T any] interface {
	Val() T
	Color() RBColor
	Left() RBNode[T]
	Right() RBNode[T]
	Parent() RBNode[T]
}

// Iterator is a pull based, one pass traversal.
// It is not stable against the tree mutation.
type Iterator[E any] interface {
	Next() bool
	Value() E
}

type RBTree[T any] interface {
	Len() int64
	Root() RBNode[T]
	Insert(node RBNode[T]) error
	InsertValue(val T) (RBNode[T], error)
	// Delete may move the in-order neighbour's value into the node and
	// unlink the neighbour instead. Do not reuse the node as the handle
	// of the removed value.
	Delete(node RBNode[T]) error
	DeleteMin() (T, error)
	Search(val T) bool
	SearchNode(val T) RBNode[T]
	Min() (T, bool)
	Max() (T, bool)
	InOrder() Iterator[T]
	DFS() Iterator[RBNode[T]]
	BFS() Iterator[RBNode[T]]
	Foreach(action func(idx int64, color RBColor, val T) bool)
	Release()
}

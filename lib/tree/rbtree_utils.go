package tree

import (
	"go.uber.org/multierr"

	"github.com/benz9527/xrbtree/lib/infra"
)

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func isRed[T any](node RBNode[T]) bool {
	return node != nil && node.Color() == Red
}

func RootColorValidate[T any](tree RBTree[T]) error {
	if root := tree.Root(); root != nil && root.Color() != Black {
		return infra.NewErrorStack("[rbtree] red root")
	}
	return nil
}

// BFS traversal to validate no red node has a red child.
func RedViolationValidate[T any](tree RBTree[T]) error {
	for iter := tree.BFS(); iter.Next(); {
		aux := iter.Value()
		if isRed[T](aux) && (isRed[T](aux.Left()) || isRed[T](aux.Right())) {
			return infra.NewErrorStack("[rbtree] red violation")
		}
	}
	return nil
}

// blackHeight returns -1 if the left and right black heights differ.
// The absent child counts as one black node.
func blackHeight[T any](node RBNode[T]) int {
	if node == nil {
		return 1
	}
	l := blackHeight[T](node.Left())
	if l < 0 {
		return -1
	}
	r := blackHeight[T](node.Right())
	if r < 0 || l != r {
		return -1
	}
	if node.Color() == Black {
		return l + 1
	}
	return l
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

2-3-4 tree like:

	       <8> --- [13]
		  /  \         \
		 /    \         \
	  <1>-[6][11]  [14] [15] <16>-[17]

Each nil leaf to root node black depth are equal.
*/
func BlackViolationValidate[T any](tree RBTree[T]) error {
	if blackHeight[T](tree.Root()) < 0 {
		return infra.NewErrorStack("[rbtree] black violation")
	}
	return nil
}

// OrderValidate checks the in-order sequence by the tree's own ordering,
// the descending tree has to be non-increasing.
func OrderValidate[T any](tree RBTree[T]) error {
	t, ok := tree.(*rbTree[T])
	if !ok {
		return infra.WrapErrorStack(ErrForeignNode)
	}
	var (
		prev  T
		first = true
	)
	for iter := t.InOrder(); iter.Next(); {
		cur := iter.Value()
		if !first && t.compare(prev, cur) > 0 {
			return infra.NewErrorStack("[rbtree] order violation")
		}
		prev, first = cur, false
	}
	return nil
}

// SizeValidate counts the reachable nodes and checks their parent links.
func SizeValidate[T any](tree RBTree[T]) error {
	count := int64(0)
	if root := tree.Root(); root != nil && root.Parent() != nil {
		return infra.NewErrorStack("[rbtree] root with parent")
	}
	for iter := tree.BFS(); iter.Next(); {
		aux := iter.Value()
		if l := aux.Left(); l != nil && l.Parent() != aux {
			return infra.NewErrorStack("[rbtree] broken parent link")
		}
		if r := aux.Right(); r != nil && r.Parent() != aux {
			return infra.NewErrorStack("[rbtree] broken parent link")
		}
		count++
	}
	if count != tree.Len() {
		return infra.NewErrorStack("[rbtree] size mismatch")
	}
	return nil
}

// Validate combines all the rules.
func Validate[T any](tree RBTree[T]) error {
	return multierr.Combine(
		RootColorValidate[T](tree),
		RedViolationValidate[T](tree),
		BlackViolationValidate[T](tree),
		OrderValidate[T](tree),
		SizeValidate[T](tree),
	)
}

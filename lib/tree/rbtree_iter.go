package tree

import (
	"github.com/benz9527/xrbtree/lib/list"
)

type inOrderIterator[T any] struct {
	tree *rbTree[T]
	next *rbNode[T]
	cur  *rbNode[T]
}

func (iter *inOrderIterator[T]) Next() bool {
	if iter.next == iter.tree.sentinel {
		iter.cur = nil
		return false
	}
	iter.cur = iter.next
	iter.next = iter.tree.succ(iter.cur)
	return true
}

func (iter *inOrderIterator[T]) Value() T {
	if iter.cur == nil {
		var zero T
		return zero
	}
	return iter.cur.val
}

// InOrder starts from the leftmost node and steps by the succ.
func (tree *rbTree[T]) InOrder() Iterator[T] {
	return &inOrderIterator[T]{
		tree: tree,
		next: tree.minimum(tree.root),
	}
}

// dfsMark records which subtree of the frame's node has been pushed.
type dfsMark uint8

const (
	dfsNone dfsMark = iota
	dfsLeft
	dfsRight
)

type dfsFrame[T any] struct {
	node *rbNode[T]
	mark dfsMark
}

// dfsIterator is a push-down automaton of the post order traversal.
type dfsIterator[T any] struct {
	tree  *rbTree[T]
	stack []dfsFrame[T]
	cur   *rbNode[T]
}

func (iter *dfsIterator[T]) push(node *rbNode[T]) {
	if node == iter.tree.sentinel {
		return
	}
	iter.stack = append(iter.stack, dfsFrame[T]{node: node, mark: dfsNone})
}

func (iter *dfsIterator[T]) Next() bool {
	for size := len(iter.stack); size > 0; size = len(iter.stack) {
		top := &iter.stack[size-1]
		switch top.mark {
		case dfsNone:
			top.mark = dfsLeft
			iter.push(top.node.left)
		case dfsLeft:
			top.mark = dfsRight
			iter.push(top.node.right)
		case dfsRight:
			iter.cur = top.node
			iter.stack[size-1] = dfsFrame[T]{}
			iter.stack = iter.stack[:size-1]
			return true
		}
	}
	iter.cur = nil
	return false
}

func (iter *dfsIterator[T]) Value() RBNode[T] {
	if iter.cur == nil {
		return nil
	}
	return iter.cur
}

func (tree *rbTree[T]) dfs() *dfsIterator[T] {
	iter := &dfsIterator[T]{
		tree:  tree,
		stack: make([]dfsFrame[T], 0, 32),
	}
	iter.push(tree.root)
	return iter
}

// DFS visits the left subtree, the right subtree and then the node.
func (tree *rbTree[T]) DFS() Iterator[RBNode[T]] {
	return tree.dfs()
}

type bfsIterator[T any] struct {
	tree  *rbTree[T]
	queue list.LinkedList[*rbNode[T]]
	cur   *rbNode[T]
}

func (iter *bfsIterator[T]) Next() bool {
	e := iter.queue.PopFront()
	if e == nil {
		iter.cur = nil
		return false
	}
	iter.cur = e.Value
	if iter.cur.left != iter.tree.sentinel {
		iter.queue.PushBack(iter.cur.left)
	}
	if iter.cur.right != iter.tree.sentinel {
		iter.queue.PushBack(iter.cur.right)
	}
	return true
}

func (iter *bfsIterator[T]) Value() RBNode[T] {
	if iter.cur == nil {
		return nil
	}
	return iter.cur
}

// BFS visits the nodes level by level, left to right.
func (tree *rbTree[T]) BFS() Iterator[RBNode[T]] {
	iter := &bfsIterator[T]{
		tree:  tree,
		queue: list.NewLinkedList[*rbNode[T]](),
	}
	if tree.root != tree.sentinel {
		iter.queue.PushBack(tree.root)
	}
	return iter
}

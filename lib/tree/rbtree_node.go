package tree

var _ RBNode[struct{}] = (*rbNode[struct{}])(nil) // Type check assertion

// rbNode links to the tree sentinel instead of nil while it is
// owned by a tree. A detached node has all links cleared.
type rbNode[T any] struct {
	parent *rbNode[T]
	left   *rbNode[T]
	right  *rbNode[T]
	tree   *rbTree[T]
	val    T
	color  RBColor
}

// NewRBNode creates a detached node. Its color and links are
// overwritten by the tree on insertion.
func NewRBNode[T any](val T) RBNode[T] {
	return &rbNode[T]{
		val:   val,
		color: Red,
	}
}

func (node *rbNode[T]) Val() T {
	if node == nil {
		var zero T
		return zero
	}
	return node.val
}

// Color returns Black for the nil node, the same as the absent children.
func (node *rbNode[T]) Color() RBColor {
	if node == nil {
		return Black
	}
	return node.color
}

// The typed nil pointer must not be converted into the
// interface, otherwise the caller's nil check fails.
func (node *rbNode[T]) expose(link *rbNode[T]) RBNode[T] {
	if link == nil || (node.tree != nil && link == node.tree.sentinel) {
		return nil
	}
	return link
}

func (node *rbNode[T]) Left() RBNode[T] {
	if node == nil {
		return nil
	}
	return node.expose(node.left)
}

func (node *rbNode[T]) Right() RBNode[T] {
	if node == nil {
		return nil
	}
	return node.expose(node.right)
}

func (node *rbNode[T]) Parent() RBNode[T] {
	if node == nil {
		return nil
	}
	return node.expose(node.parent)
}

func (node *rbNode[T]) isRed() bool {
	return node.color == Red
}

func (node *rbNode[T]) isBlack() bool {
	return node.color == Black
}

func (node *rbNode[T]) direction() RBDirection {
	if node.parent == node.tree.sentinel {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[T]) detach() {
	node.parent = nil
	node.left = nil
	node.right = nil
	node.tree = nil
}

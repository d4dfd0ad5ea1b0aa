package tree

import (
	"github.com/benz9527/xrbtree/lib/infra"
)

var _ RBTree[struct{}] = (*rbTree[struct{}])(nil) // Type check assertion

// The sentinel stands for every absent child and for the parent of
// the root. It is always black and never exposed to the callers.
type rbTree[T any] struct {
	root           *rbNode[T]
	sentinel       *rbNode[T]
	count          int64
	cmp            infra.OrderedKeyComparator[T]
	eq             infra.EqualityComparator[T]
	isDesc         bool
	isRmBorrowPred bool
}

func (tree *rbTree[T]) Len() int64 {
	return tree.count
}

func (tree *rbTree[T]) Root() RBNode[T] {
	if tree.root == tree.sentinel {
		return nil
	}
	return tree.root
}

func (tree *rbTree[T]) compare(i, j T) int64 {
	return tree.cmp(i, j)
}

func (tree *rbTree[T]) minimum(x *rbNode[T]) *rbNode[T] {
	if x == tree.sentinel {
		return x
	}
	for x.left != tree.sentinel {
		x = x.left
	}
	return x
}

func (tree *rbTree[T]) maximum(x *rbNode[T]) *rbNode[T] {
	if x == tree.sentinel {
		return x
	}
	for x.right != tree.sentinel {
		x = x.right
	}
	return x
}

// The succ node of the current node is its next node in sorted order.
// Returns the sentinel if x is the maximum.
func (tree *rbTree[T]) succ(x *rbNode[T]) *rbNode[T] {
	if x.right != tree.sentinel {
		return tree.minimum(x.right)
	}
	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != tree.sentinel && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// Returns the sentinel if x is the minimum.
func (tree *rbTree[T]) pred(x *rbNode[T]) *rbNode[T] {
	if x.left != tree.sentinel {
		return tree.maximum(x.left)
	}
	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != tree.sentinel && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// Introduction to Algorithms (CLRS), chapter 13.
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

// replaceChild links y into the slot of x under x's parent.
func (tree *rbTree[T]) replaceChild(x, y *rbNode[T]) {
	switch x.direction() {
	case Root:
		tree.root = y
	case Left:
		x.parent.left = y
	case Right:
		x.parent.right = y
	}
}

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[T]) leftRotate(x *rbNode[T]) {
	if x == nil || x == tree.sentinel || x.right == tree.sentinel {
		return
	}

	y := x.right
	x.right = y.left
	if y.left != tree.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent
	tree.replaceChild(x, y)
	y.left = x
	x.parent = y
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[T]) rightRotate(x *rbNode[T]) {
	if x == nil || x == tree.sentinel || x.left == tree.sentinel {
		return
	}

	y := x.left
	x.left = y.right
	if y.right != tree.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent
	tree.replaceChild(x, y)
	y.right = x
	x.parent = y
}

func (tree *rbTree[T]) InsertValue(val T) (RBNode[T], error) {
	node := NewRBNode[T](val)
	if err := tree.Insert(node); err != nil {
		return nil, err
	}
	return node, nil
}

// Insert links the node into the tree. The equal values are
// placed on the right side, so the duplicates are kept.
func (tree *rbTree[T]) Insert(node RBNode[T]) error {
	if node == nil {
		return infra.WrapErrorStack(ErrNilNode)
	}
	z, ok := node.(*rbNode[T])
	if !ok {
		return infra.WrapErrorStack(ErrForeignNode)
	}
	if z == nil {
		return infra.WrapErrorStack(ErrNilNode)
	}
	if z.tree != nil {
		return infra.WrapErrorStack(ErrNodeAlreadyLinked)
	}

	var x, y = tree.root, tree.sentinel
	for x != tree.sentinel {
		y = x
		if /* less */ tree.compare(z.val, x.val) < 0 {
			x = x.left
		} else /* greater or equal */ {
			x = x.right
		}
	}

	z.tree = tree
	z.parent = y
	z.left, z.right = tree.sentinel, tree.sentinel
	z.color = Red
	if /* i1 */ y == tree.sentinel {
		tree.root = z
	} else if tree.compare(z.val, y.val) < 0 {
		y.left = z
	} else {
		y.right = z
	}
	tree.count++

	tree.insertRebalance(z)
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

i1: Empty rbtree, X becomes the root and it is painted to black.

i2: Current node X's parent P is black, nothing to do.

i3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

i4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation it is still red-violation. Here must enter i5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

i5: Handle i4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[T]) insertRebalance(x *rbNode[T]) {
	for /* i2 */ x.parent.isRed() {
		p := x.parent
		gp := p.parent
		switch dir := p.direction(); dir {
		case Left:
			if /* i3 */ u := gp.right; u.isRed() {
				p.color, u.color, gp.color = Black, Black, Red
				x = gp
				continue
			}
			if /* i4 */ x == p.right {
				tree.leftRotate(p)
				x, p = p, x
			}
			/* i5 */
			p.color, gp.color = Black, Red
			tree.rightRotate(gp)
		case Right:
			if /* i3 */ u := gp.left; u.isRed() {
				p.color, u.color, gp.color = Black, Black, Red
				x = gp
				continue
			}
			if /* i4 */ x == p.left {
				tree.rightRotate(p)
				x, p = p, x
			}
			/* i5 */
			p.color, gp.color = Black, Red
			tree.leftRotate(gp)
		default:
			// A red parent is never the root.
			p.color = Black
		}
	}
	tree.root.color = Black
}

/*
y is the node to be physically unlinked, x is the child of y which
takes its place.

r1: Node Z has at most one child, y is z itself.

r2: Node Z has left and right node.
Find node Z's succ (or pred) to replace it to be removed.
Copy the value only. The succ has no left child and the pred has
no right child, so it enters r1 for y.

Find succ:

	  |                    |
	  Z                    S
	 / \                  / \
	L  ..   copy(S, Z)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                Y  ..

r3: Y is red, removed directly.

r4: Y is black, the path through x lacks one black node. (black-violation)
If x is red paint it into black, otherwise rebalance from x. x may be
the sentinel, its parent is kept to walk upward.
*/
func (tree *rbTree[T]) removeNode(z *rbNode[T]) {
	y := z
	if /* r2 */ z.left != tree.sentinel && z.right != tree.sentinel {
		if tree.isRmBorrowPred {
			y = tree.maximum(z.left)
		} else {
			y = tree.minimum(z.right)
		}
	}

	var x *rbNode[T]
	if y.left != tree.sentinel {
		x = y.left
	} else {
		x = y.right
	}

	x.parent = y.parent
	tree.replaceChild(y, x)
	if y != z {
		z.val = y.val
	}

	if /* r4 */ y.isBlack() {
		tree.removeRebalance(x)
	}
	tree.sentinel.parent = nil
	tree.count--
	y.detach()
}

func (tree *rbTree[T]) unwrapOwned(node RBNode[T]) (*rbNode[T], error) {
	if node == nil {
		return nil, ErrNilNode
	}
	z, ok := node.(*rbNode[T])
	if !ok {
		return nil, ErrForeignNode
	}
	if z == nil {
		return nil, ErrNilNode
	}
	if z.tree != tree || z == tree.sentinel {
		return nil, ErrNodeNotFound
	}
	return z, nil
}

func (tree *rbTree[T]) Delete(node RBNode[T]) error {
	z, err := tree.unwrapOwned(node)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	tree.removeNode(z)
	return nil
}

func (tree *rbTree[T]) DeleteMin() (T, error) {
	if tree.root == tree.sentinel {
		var zero T
		return zero, infra.WrapErrorStack(ErrEmptyTree)
	}
	_min := tree.minimum(tree.root)
	val := _min.val
	tree.removeNode(_min)
	return val, nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X carries an extra black. S is X's sibling.
Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.
The new sibling is black, enter rm2, rm3 or rm4.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: The sibling S, nephew node Sc and Sd are black.
Repaint S into red and move the extra black up to P.
If P is red, it is painted into black at the end and stop.
Otherwise, recursive to handle P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm4 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm4: Current node X's sibling S is black, nephew node Sd is red.
Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) S takes P's color, P is painted into black.
(4) Repaint Sd into black and stop.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[T]) removeRebalance(x *rbNode[T]) {
	for x != tree.root && x.isBlack() {
		p := x.parent
		// x may be the sentinel, so the side is decided by the pointer.
		if x == p.left {
			s := p.right
			if /* rm1 */ s.isRed() {
				s.color, p.color = Black, Red
				tree.leftRotate(p)
				s = p.right
			}
			if /* rm2 */ s.left.isBlack() && s.right.isBlack() {
				s.color = Red
				x = p
				continue
			}
			if /* rm3 */ s.right.isBlack() {
				s.left.color, s.color = Black, Red
				tree.rightRotate(s)
				s = p.right
			}
			/* rm4 */
			s.color, p.color, s.right.color = p.color, Black, Black
			tree.leftRotate(p)
			x = tree.root
		} else {
			s := p.left
			if /* rm1 */ s.isRed() {
				s.color, p.color = Black, Red
				tree.rightRotate(p)
				s = p.left
			}
			if /* rm2 */ s.right.isBlack() && s.left.isBlack() {
				s.color = Red
				x = p
				continue
			}
			if /* rm3 */ s.left.isBlack() {
				s.right.color, s.color = Black, Red
				tree.leftRotate(s)
				s = p.left
			}
			/* rm4 */
			s.color, p.color, s.left.color = p.color, Black, Black
			tree.rightRotate(p)
			x = tree.root
		}
	}
	x.color = Black
}

// search uses the equality to match and the ordering to decide the
// direction. The ordering returns 0 but the values are not equal is
// treated as absent, the callers have to keep them consistent.
func (tree *rbTree[T]) search(val T) *rbNode[T] {
	for aux := tree.root; aux != tree.sentinel; {
		if tree.eq(val, aux.val) {
			return aux
		}
		res := tree.compare(val, aux.val)
		if res < 0 {
			aux = aux.left
		} else if res > 0 {
			aux = aux.right
		} else {
			return nil
		}
	}
	return nil
}

func (tree *rbTree[T]) Search(val T) bool {
	return tree.search(val) != nil
}

func (tree *rbTree[T]) SearchNode(val T) RBNode[T] {
	if x := tree.search(val); x != nil {
		return x
	}
	return nil
}

func (tree *rbTree[T]) Min() (T, bool) {
	if tree.root == tree.sentinel {
		var zero T
		return zero, false
	}
	return tree.minimum(tree.root).val, true
}

func (tree *rbTree[T]) Max() (T, bool) {
	if tree.root == tree.sentinel {
		var zero T
		return zero, false
	}
	return tree.maximum(tree.root).val, true
}

// Foreach walks in order until the action returns false.
func (tree *rbTree[T]) Foreach(action func(idx int64, color RBColor, val T) bool) {
	if action == nil {
		return
	}
	idx := int64(0)
	for aux := tree.minimum(tree.root); aux != tree.sentinel; aux = tree.succ(aux) {
		if !action(idx, aux.color, aux.val) {
			return
		}
		idx++
	}
}

// Release detaches every node in post order and empties the tree.
func (tree *rbTree[T]) Release() {
	iter := tree.dfs()
	for iter.Next() {
		iter.cur.detach()
	}
	tree.root = tree.sentinel
	tree.sentinel.parent = nil
	tree.count = 0
}

type RBTreeOpt[T any] func(*rbTree[T])

// WithRBTreeDesc reverses the ordering, the in-order traversal
// becomes non-increasing.
func WithRBTreeDesc[T any]() RBTreeOpt[T] {
	return func(tree *rbTree[T]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred makes the deletion of a node with two
// children borrow the predecessor instead of the successor.
func WithRBTreeRemoveBorrowPred[T any]() RBTreeOpt[T] {
	return func(tree *rbTree[T]) {
		tree.isRmBorrowPred = true
	}
}

func NewRBTree[T infra.OrderedKey](opts ...RBTreeOpt[T]) RBTree[T] {
	return NewRBTreeFunc[T](infra.OrderedKeyCompare[T], infra.OrderedKeyEqual[T], opts...)
}

// NewRBTreeFunc creates a tree with the customized ordering and equality.
// Equal values must be compared as 0. A nil eq falls back to cmp.
func NewRBTreeFunc[T any](
	cmp infra.OrderedKeyComparator[T],
	eq infra.EqualityComparator[T],
	opts ...RBTreeOpt[T],
) RBTree[T] {
	if cmp == nil {
		panic( /* debug assertion */ "[rbtree] nil ordering comparator")
	}
	if eq == nil {
		eq = func(i, j T) bool {
			return cmp(i, j) == 0
		}
	}

	tree := &rbTree[T]{
		sentinel: &rbNode[T]{color: Black},
		cmp:      cmp,
		eq:       eq,
	}
	tree.sentinel.tree = tree
	tree.root = tree.sentinel

	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	if tree.isDesc {
		tree.cmp = infra.ReverseComparator(cmp)
	}
	return tree
}

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newValidateTree(t *testing.T) *rbTree[int] {
	tree := NewRBTree[int]().(*rbTree[int])
	for _, v := range []int{2, 1, 3} {
		_, err := tree.InsertValue(v)
		require.NoError(t, err)
	}
	require.NoError(t, Validate[int](tree))
	return tree
}

func TestValidate_Violations(t *testing.T) {
	tree := newValidateTree(t)
	tree.root.color = Red
	require.Error(t, RootColorValidate[int](tree))
	require.Error(t, RedViolationValidate[int](tree))
	require.NoError(t, BlackViolationValidate[int](tree))
	err := Validate[int](tree)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)

	tree = newValidateTree(t)
	tree.search(1).color = Black
	require.Error(t, BlackViolationValidate[int](tree))
	require.NoError(t, RedViolationValidate[int](tree))

	tree = newValidateTree(t)
	l, r := tree.search(1), tree.search(3)
	l.val, r.val = r.val, l.val
	require.Error(t, OrderValidate[int](tree))
	require.NoError(t, SizeValidate[int](tree))

	tree = newValidateTree(t)
	tree.count++
	require.Error(t, SizeValidate[int](tree))

	tree = newValidateTree(t)
	tree.root.right.parent = tree.root.left
	require.Error(t, SizeValidate[int](tree))
}

func TestValidate_ForeignTree(t *testing.T) {
	var tree RBTree[int]
	require.ErrorIs(t, OrderValidate[int](tree), ErrForeignNode)
}

package rewrite_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rvandoren/silver/ast"
	"github.com/rvandoren/silver/rewrite"
)

func mkAnd(l, r ast.Exp) ast.And {
	a := ast.And{}
	a.Left, a.Right = l, r
	return a
}

func isAdd(n rewrite.Node) bool {
	_, ok := n.(ast.Add)
	return ok
}

func TestCountQueryCountsAcrossNestedChildren(t *testing.T) {
	// And(Add(1,2), Add(Add(3,4),5)) contains exactly 3 Add nodes.
	tree := mkAnd(
		mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)),
		mkAdd(mkAdd(ast.NewIntLit(3), ast.NewIntLit(4)), ast.NewIntLit(5)),
	)

	q := rewrite.CountQuery(isAdd)
	if got := q.Execute(tree); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestCountQueryReturnsNeutralElementWhenNothingMatches(t *testing.T) {
	q := rewrite.CountQuery(isAdd)
	if got := q.Execute(ast.NewIntLit(7)); got != 0 {
		t.Fatalf("got %d, want neutral element 0", got)
	}
}

// expCompareByEqual lets cmp.Diff compare ast.Exp values (which carry
// unexported embedded fields) by delegating to the tree's own structural
// Equal method rather than reflecting into them field by field.
var expCompareByEqual = cmp.Comparer(func(a, b ast.Exp) bool { return a.Equal(b) })

func TestCollectQueryGathersExtractedValuesInOrder(t *testing.T) {
	tree := mkAnd(
		mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)),
		mkAdd(ast.NewIntLit(3), ast.NewIntLit(4)),
	)
	q := rewrite.CollectQuery(isAdd, func(n rewrite.Node) ast.Add { return n.(ast.Add) })

	got := q.Execute(tree)
	want := []ast.Add{
		mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)),
		mkAdd(ast.NewIntLit(3), ast.NewIntLit(4)),
	}
	if diff := cmp.Diff(want, got, expCompareByEqual); diff != "" {
		t.Fatalf("collected Add nodes differ from expected order/values (-want +got):\n%s", diff)
	}
}

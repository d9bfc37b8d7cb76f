package rewrite_test

import (
	"testing"

	"github.com/rvandoren/silver/ast"
	"github.com/rvandoren/silver/rewrite"
)

func TestSeqRunsSecondOnFirstsOutput(t *testing.T) {
	// negate : And(a,b) -> Or(a,b); foldAdd folds constant Adds.
	negate := rewrite.NewStrategy(func(n rewrite.Node) (rewrite.Node, bool) {
		and, ok := n.(ast.And)
		if !ok {
			return nil, false
		}
		or := ast.Or{}
		or.Left, or.Right = and.Left, and.Right
		return or, true
	})
	fold := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.BottomUp)

	tree := mkAnd(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)), ast.NewIntLit(3))

	combined := rewrite.Seq(negate, fold)
	got := combined.Execute(tree)

	or, ok := got.(ast.Or)
	if !ok {
		t.Fatalf("want Or after negate ran, got %#v", got)
	}
	if v := intLitValue(t, or.Left); v != 3 {
		t.Fatalf("fold should have run on negate's output, got %d", v)
	}
}

func TestThenSkipsSecondWhenFirstIsANoOp(t *testing.T) {
	noMatch := rewrite.NewStrategy(func(n rewrite.Node) (rewrite.Node, bool) { return nil, false })
	zeroAll := rewrite.NewStrategy(func(n rewrite.Node) (rewrite.Node, bool) {
		return ast.NewIntLit(0), true
	})

	combined := rewrite.Then(noMatch, zeroAll)
	lit := ast.NewIntLit(9)
	got := combined.Execute(lit)

	if v := intLitValue(t, got); v != 9 {
		t.Fatalf("got %d, want unchanged 9 (second stage must not run)", v)
	}
}

func TestThenRunsSecondWhenFirstChangedTheTree(t *testing.T) {
	fold := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.BottomUp)
	zeroAll := rewrite.NewStrategy(func(n rewrite.Node) (rewrite.Node, bool) {
		if _, ok := n.(ast.IntLit); ok {
			return ast.NewIntLit(0), true
		}
		return nil, false
	})

	combined := rewrite.Then(fold, zeroAll)
	tree := mkAdd(ast.NewIntLit(1), ast.NewIntLit(2))
	got := combined.Execute(tree)

	if v := intLitValue(t, got); v != 0 {
		t.Fatalf("got %d, want 0 (zeroAll should run on fold's changed output)", v)
	}
}

func TestRepeatAppliedTwiceEqualsAppliedOnce(t *testing.T) {
	// repeat(s).execute twice over its own output must equal a single
	// application, since the first call already reaches a fixpoint.
	fold := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.BottomUp)
	repeated := rewrite.Repeat(fold)

	tree := mkAdd(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)), ast.NewIntLit(3))

	once := repeated.Execute(tree)
	twice := repeated.Execute(once)

	v1, v2 := intLitValue(t, once), intLitValue(t, twice)
	if v1 != v2 {
		t.Fatalf("repeat is not idempotent: %d != %d", v1, v2)
	}
}

package rewrite_test

import (
	"testing"

	"github.com/rvandoren/silver/ast"
	"github.com/rvandoren/silver/rewrite"
)

func mkAdd(l, r ast.Exp) ast.Add {
	a := ast.Add{}
	a.Left, a.Right = l, r
	return a
}

// foldAdd rewrites Add(IntLit, IntLit) to the summed IntLit — the
// canonical constant-folding rule exercised throughout this file.
func foldAdd(n rewrite.Node) (rewrite.Node, bool) {
	add, ok := n.(ast.Add)
	if !ok {
		return nil, false
	}
	l, lok := add.Left.(ast.IntLit)
	r, rok := add.Right.(ast.IntLit)
	if !lok || !rok {
		return nil, false
	}
	return ast.NewIntLit(l.Value.Int64() + r.Value.Int64()), true
}

func intLitValue(t *testing.T, n rewrite.Node) int64 {
	t.Helper()
	lit, ok := n.(ast.IntLit)
	if !ok {
		t.Fatalf("result is not an IntLit: %#v", n)
	}
	return lit.Value.Int64()
}

func TestStrategyBottomUpFoldsNestedRedexInOnePass(t *testing.T) {
	// Add(Add(1,2), 3): a BottomUp pass rebuilds the inner Add first, then
	// folds the outer Add against the rebuilt child, yielding IntLit(6)
	// without a second traversal.
	tree := mkAdd(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)), ast.NewIntLit(3))

	s := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.BottomUp)
	got := s.Execute(tree)

	if v := intLitValue(t, got); v != 6 {
		t.Fatalf("got %d, want 6", v)
	}
}

func TestStrategyTopDownDoesNotFoldNestedRedexInOnePass(t *testing.T) {
	// TopDown applies the rule to the outer Add first, while its children
	// are still Add(1,2) and IntLit(3) — the rule does not match an outer
	// node whose left child isn't yet an IntLit, so only the inner Add
	// folds during descent; the outer node is never revisited.
	tree := mkAdd(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)), ast.NewIntLit(3))

	s := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.TopDown)
	got := s.Execute(tree)

	add, ok := got.(ast.Add)
	if !ok {
		t.Fatalf("expected the outer node to remain an Add, got %#v", got)
	}
	if v := intLitValue(t, add.Left); v != 3 {
		t.Fatalf("inner Add should have folded to 3, got %d", v)
	}
	if v := intLitValue(t, add.Right); v != 3 {
		t.Fatalf("want right child 3, got %d", v)
	}
}

func TestStrategyInnermostFoldsDeeplyNestedChainInOnePass(t *testing.T) {
	// ((1+2)+3)+4, folded from the inside out with no child left over.
	inner := mkAdd(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)), ast.NewIntLit(3))
	tree := mkAdd(inner, ast.NewIntLit(4))

	s := rewrite.NewStrategy(foldAdd).WithOrder(rewrite.Innermost)
	got := s.Execute(tree)

	if v := intLitValue(t, got); v != 10 {
		t.Fatalf("got %d, want 10", v)
	}
}

func TestStrategyPlusTriesFirstRuleBeforeSecond(t *testing.T) {
	// anyAdd matches every Add regardless of its children, so when it
	// runs first it must win even though foldAdd would also match here.
	anyAdd := rewrite.NewStrategy(func(n rewrite.Node) (rewrite.Node, bool) {
		if _, ok := n.(ast.Add); ok {
			return ast.NewIntLit(100), true
		}
		return nil, false
	})
	fold := rewrite.NewStrategy(foldAdd)

	winner := anyAdd.Plus(fold)
	got := winner.Execute(mkAdd(ast.NewIntLit(1), ast.NewIntLit(2)))
	if v := intLitValue(t, got); v != 100 {
		t.Fatalf("got %d, want 100 (first rule should win)", v)
	}

	fallback := fold.Plus(anyAdd)
	got2 := fallback.Execute(ast.NewIntLit(1))
	if v := intLitValue(t, got2); v != 1 {
		t.Fatalf("got %d, want 1 unchanged (neither rule matches a bare IntLit)", v)
	}
}

func TestRuleMismatchIsANoOp(t *testing.T) {
	s := rewrite.NewStrategy(foldAdd)
	lit := ast.NewIntLit(42)
	got := s.Execute(lit)
	if v := intLitValue(t, got); v != 42 {
		t.Fatalf("got %d, want unchanged 42", v)
	}
}

package cfg_test

import (
	"strings"
	"testing"

	"github.com/rvandoren/silver/ast"
	"github.com/rvandoren/silver/cfg"
)

func intVar(name string) ast.LocalVar {
	v := ast.LocalVar{Name: name}
	v.Type = ast.Int{}
	return v
}

func assign(name string, rhs ast.Exp) ast.LocalVarAssign {
	return ast.LocalVarAssign{Lhs: intVar(name), Rhs: rhs}
}

func TestGenerateStraightLineSeqnYieldsSingleTerminalBlock(t *testing.T) {
	stmt := ast.Seqn{Stmts: []ast.Stmt{
		assign("x", ast.NewIntLit(1)),
		assign("y", ast.NewIntLit(2)),
	}}

	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := entry.(*cfg.TerminalBlock); !ok {
		t.Fatalf("got %T, want *TerminalBlock", entry)
	}

	checker := cfg.NewChecker()
	if res := checker.Check(entry); !res.OK() {
		t.Fatalf("Check reported errors: %v", res.Errors)
	}
}

func TestGenerateIfProducesConvergingDiamond(t *testing.T) {
	stmt := ast.If{
		Cond: ast.TrueLit{},
		Then: assign("x", ast.NewIntLit(1)),
		Else: ast.Seqn{},
	}

	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cond, ok := entry.(*cfg.ConditionalBlock)
	if !ok {
		t.Fatalf("got %T, want *ConditionalBlock", entry)
	}
	if cond.Then == cond.Else {
		t.Fatalf("Then and Else must be distinct blocks")
	}

	thenBlk, ok := cond.Then.(*cfg.NormalBlock)
	if !ok {
		t.Fatalf("Then: got %T, want *NormalBlock", cond.Then)
	}
	elseBlk, ok := cond.Else.(*cfg.NormalBlock)
	if !ok {
		t.Fatalf("Else: got %T, want *NormalBlock", cond.Else)
	}
	if thenBlk.Succ != elseBlk.Succ {
		t.Fatalf("both arms of an if with no further branching should converge on the same block")
	}
	if _, ok := thenBlk.Succ.(*cfg.TerminalBlock); !ok {
		t.Fatalf("converged successor: got %T, want *TerminalBlock", thenBlk.Succ)
	}

	checker := cfg.NewChecker()
	if res := checker.Check(entry); !res.OK() {
		t.Fatalf("Check reported errors: %v", res.Errors)
	}
}

func TestGenerateWhileProducesLoopBlockWithOwnTerminalBody(t *testing.T) {
	stmt := ast.While{
		Cond: ast.TrueLit{},
		Body: assign("x", ast.NewIntLit(1)),
	}

	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	head, ok := entry.(*cfg.NormalBlock)
	if !ok {
		t.Fatalf("got %T, want *NormalBlock", entry)
	}
	loop, ok := head.Succ.(*cfg.LoopBlock)
	if !ok {
		t.Fatalf("got %T, want *LoopBlock", head.Succ)
	}
	if _, ok := loop.Body.(*cfg.TerminalBlock); !ok {
		t.Fatalf("loop body entry: got %T, want *TerminalBlock (single-statement body)", loop.Body)
	}
	if _, ok := loop.Succ.(*cfg.TerminalBlock); !ok {
		t.Fatalf("post-loop continuation: got %T, want *TerminalBlock", loop.Succ)
	}

	checker := cfg.NewChecker()
	if res := checker.Check(entry); !res.OK() {
		t.Fatalf("Check reported errors: %v", res.Errors)
	}
}

func TestGenerateGotoToUndeclaredLabelFails(t *testing.T) {
	stmt := ast.Seqn{Stmts: []ast.Stmt{
		ast.Goto{Target: "nowhere"},
	}}

	_, err := cfg.NewGenerator().Generate(stmt)
	if err == nil {
		t.Fatalf("expected a structural error for a goto to an undeclared label")
	}
	if _, ok := err.(*cfg.StructuralError); !ok {
		t.Fatalf("got error of type %T, want *StructuralError", err)
	}
}

func TestGenerateGotoToDeclaredLabelSucceeds(t *testing.T) {
	stmt := ast.Seqn{Stmts: []ast.Stmt{
		ast.Goto{Target: "skip"},
		assign("x", ast.NewIntLit(1)),
		ast.Label{Name: "skip"},
		assign("y", ast.NewIntLit(2)),
	}}

	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if entry == nil {
		t.Fatalf("expected a non-nil entry block")
	}
}

func TestGenerateBackwardGotoWithoutLoopIsRejectedAsNotAcyclic(t *testing.T) {
	// A backward jump to a declared label, with no enclosing while, builds
	// a block graph with a real cycle rather than a LoopBlock — Generate
	// accepts it (the label is declared) but Check must reject the result.
	stmt := ast.Seqn{Stmts: []ast.Stmt{
		ast.Label{Name: "L"},
		assign("x", ast.NewIntLit(1)),
		ast.Goto{Target: "L"},
	}}

	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	res := cfg.NewChecker().Check(entry)
	if res.OK() {
		t.Fatalf("expected a violation for a goto-formed cycle outside any LoopBlock")
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "not acyclic") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an acyclicity violation, got errors: %v", res.Errors)
	}
}

func TestCheckerRejectsNonBooleanConditionalCond(t *testing.T) {
	terminal := &cfg.TerminalBlock{Stmt: ast.Seqn{}}
	cond := &cfg.ConditionalBlock{
		Cond: ast.NewIntLit(1), // not Boolean-typed
		Then: terminal,
		Else: terminal,
	}

	res := cfg.NewChecker().Check(cond)
	if res.OK() {
		t.Fatalf("expected a violation for a non-Boolean Cond and identical Then/Else")
	}
}

func TestCheckerRejectsReservedIdentifierPrefix(t *testing.T) {
	stmt := assign("$$reserved", ast.NewIntLit(1))
	block := &cfg.TerminalBlock{Stmt: stmt}

	res := cfg.NewChecker().Check(block)
	if res.OK() {
		t.Fatalf("expected a violation for an identifier using the reserved synthesized-label prefix")
	}
}

func TestWalkVisitsEveryReachableBlockOnce(t *testing.T) {
	stmt := ast.If{
		Cond: ast.TrueLit{},
		Then: assign("x", ast.NewIntLit(1)),
		Else: ast.Seqn{},
	}
	entry, err := cfg.NewGenerator().Generate(stmt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	count := 0
	cfg.Walk(entry, func(cfg.Block) { count++ })
	if count != 4 {
		t.Fatalf("got %d blocks visited, want 4 (conditional, 2 arms, converged terminal)", count)
	}
}

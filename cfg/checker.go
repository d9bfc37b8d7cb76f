package cfg

import (
	"fmt"
	"strings"

	"github.com/rvandoren/silver/ast"
	"golang.org/x/tools/container/intsets"
)

// IdentifierPolicy controls which names the consistency checker accepts
// as user-written identifiers. The generator reserves the "$$" prefix
// for its own synthesized labels, so a user-supplied Goto/Label naming
// one is rejected.
type IdentifierPolicy struct {
	ReservedPrefixes []string
}

// DefaultIdentifierPolicy reserves the generator's own synthesized-label
// prefix.
func DefaultIdentifierPolicy() IdentifierPolicy {
	return IdentifierPolicy{ReservedPrefixes: []string{"$$"}}
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

func validUserDefinedIdentifier(name string, policy IdentifierPolicy) bool {
	if !validIdentifier(name) {
		return false
	}
	for _, p := range policy.ReservedPrefixes {
		if strings.HasPrefix(name, p) {
			return false
		}
	}
	return true
}

func noDuplicates(names []string) bool {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

func isAssignable(from, to ast.Typ) bool { return ast.IsAssignableTo(from, to) }

func areAssignable(from, to []ast.Typ) bool { return ast.AreAssignable(from, to) }

// Checker runs the consistency checks over a generated Block graph: the
// structural invariants of a well-formed CFG, plus that every
// identifier a statement introduces or references is well-formed.
//
// Grounded on extras/cfg/df.go's GEN/KILL/DEF/USE bitset-based dataflow
// analysis for the visited-set technique, and on the module's existing
// golang.org/x/tools dependency for intsets.Sparse, used here for the
// acyclicity check's on-stack/visited sets.
type Checker struct {
	Policy IdentifierPolicy
}

// NewChecker returns a Checker using DefaultIdentifierPolicy.
func NewChecker() *Checker {
	return &Checker{Policy: DefaultIdentifierPolicy()}
}

// CheckResult collects every violation found by Check. A nil/empty
// Errors means entry is well-formed.
type CheckResult struct {
	Errors []string
}

func (r CheckResult) OK() bool { return len(r.Errors) == 0 }

func (r *CheckResult) add(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// IsWellFormed checks only the structural invariants, without walking
// statement/expression identifiers — the cheaper check a caller that
// trusts its own identifiers (e.g. a round-trip test) can run.
func (c *Checker) IsWellFormed(entry Block) bool {
	res := CheckResult{}
	c.checkShape(entry, &res)
	return res.OK()
}

// Check runs every consistency check this package defines: the
// structural invariants plus identifier/assignability validation of the
// statements and expressions the graph carries.
func (c *Checker) Check(entry Block) CheckResult {
	res := CheckResult{}
	c.checkShape(entry, &res)
	c.checkIdentifiers(entry, &res)
	return res
}

// checkShape verifies that the outer graph has exactly one terminal
// block, is acyclic, that every conditional block's two successors are
// distinct with a Boolean-typed Cond, that every block is reachable from
// entry, and that every loop body is itself well-formed, by walking the
// outer graph once.
func (c *Checker) checkShape(entry Block, res *CheckResult) {
	terminals := 0
	ids := make(map[Block]int)
	idOf := func(b Block) int {
		if i, ok := ids[b]; ok {
			return i
		}
		i := len(ids)
		ids[b] = i
		return i
	}

	var onStack intsets.Sparse
	var visited intsets.Sparse

	var visit func(b Block)
	visit = func(b Block) {
		id := idOf(b)
		if visited.Has(id) {
			return
		}
		visited.Insert(id)
		onStack.Insert(id)
		defer onStack.Remove(id)

		switch blk := b.(type) {
		case *TerminalBlock:
			terminals++

		case *ConditionalBlock:
			if _, ok := blk.Cond.Typ().(ast.Bool); !ok {
				res.add("conditional block's Cond is not Boolean-typed")
			}
			if blk.Then == blk.Else {
				res.add("conditional block's Then and Else are not distinct")
			}

		case *LoopBlock:
			if _, ok := blk.Cond.Typ().(ast.Bool); !ok {
				res.add("loop block's Cond is not Boolean-typed")
			}
			if blk.Body != nil {
				bodyRes := CheckResult{}
				c.checkShape(blk.Body, &bodyRes)
				if !bodyRes.OK() {
					res.add("loop body is not well-formed: %s", strings.Join(bodyRes.Errors, "; "))
				}
			}
		}

		for _, s := range Successors(b) {
			if s == nil {
				res.add("block has an unset successor")
				continue
			}
			sid := idOf(s)
			if onStack.Has(sid) {
				res.add("outer graph is not acyclic")
				continue
			}
			visit(s)
		}
	}

	if entry == nil {
		res.add("entry is nil")
		return
	}
	visit(entry)

	if terminals != 1 {
		res.add("outer graph has %d terminal blocks, want exactly 1", terminals)
	}
}

// checkIdentifiers walks every statement/expression reachable from entry
// (including loop bodies) and validates names against c.Policy, plus
// checks LocalVarAssign/FieldAssign/MethodCall assignability.
func (c *Checker) checkIdentifiers(entry Block, res *CheckResult) {
	seen := make(map[Block]bool)
	var visit func(b Block)
	visit = func(b Block) {
		if b == nil || seen[b] {
			return
		}
		seen[b] = true

		switch blk := b.(type) {
		case *TerminalBlock:
			c.checkStmt(blk.Stmt, res)
		case *NormalBlock:
			c.checkStmt(blk.Stmt, res)
			visit(blk.Succ)
		case *ConditionalBlock:
			c.checkStmt(blk.Stmt, res)
			c.checkExp(blk.Cond, res)
			visit(blk.Then)
			visit(blk.Else)
		case *LoopBlock:
			c.checkExp(blk.Cond, res)
			for _, inv := range blk.Invs {
				c.checkExp(inv, res)
			}
			visit(blk.Body)
			visit(blk.Succ)
		}
	}
	visit(entry)
}

func (c *Checker) checkStmt(s ast.Stmt, res *CheckResult) {
	switch st := s.(type) {
	case ast.Seqn:
		for _, child := range st.Stmts {
			c.checkStmt(child, res)
		}
	case ast.LocalVarAssign:
		if !validUserDefinedIdentifier(st.Lhs.Name, c.Policy) {
			res.add("invalid local variable identifier %q", st.Lhs.Name)
		}
		if !isAssignable(st.Rhs.Typ(), st.Lhs.Typ()) {
			res.add("cannot assign %v to %v in assignment to %q", st.Rhs.Typ(), st.Lhs.Typ(), st.Lhs.Name)
		}
		c.checkExp(st.Rhs, res)
	case ast.FieldAssign:
		if !validIdentifier(st.Field) {
			res.add("invalid field identifier %q", st.Field)
		}
		c.checkExp(st.Receiver, res)
		c.checkExp(st.Rhs, res)
	case ast.MethodCall:
		if !validUserDefinedIdentifier(st.Method, c.Policy) {
			res.add("invalid method identifier %q", st.Method)
		}
		names := make([]string, len(st.Targets))
		for i, t := range st.Targets {
			names[i] = t.Name
			if !validUserDefinedIdentifier(t.Name, c.Policy) {
				res.add("invalid method call target identifier %q", t.Name)
			}
		}
		if !noDuplicates(names) {
			res.add("method call %q assigns the same target more than once", st.Method)
		}
		for _, a := range st.Args {
			c.checkExp(a, res)
		}
	case ast.Inhale:
		c.checkExp(st.Assertion, res)
	case ast.Exhale:
		c.checkExp(st.Assertion, res)
	case ast.Fold:
		c.checkExp(st.Predicate, res)
	case ast.Unfold:
		c.checkExp(st.Predicate, res)
	case ast.Label:
		if !validUserDefinedIdentifier(st.Name, c.Policy) {
			res.add("invalid label identifier %q", st.Name)
		}
	case ast.Goto:
		if !validUserDefinedIdentifier(st.Target, c.Policy) {
			res.add("invalid goto target identifier %q", st.Target)
		}
	}
}

func (c *Checker) checkExp(e ast.Exp, res *CheckResult) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case ast.LocalVar:
		if !validUserDefinedIdentifier(ex.Name, c.Policy) {
			res.add("invalid local variable identifier %q", ex.Name)
		}
	case ast.FuncApp:
		if !validUserDefinedIdentifier(ex.Func, c.Policy) {
			res.add("invalid function identifier %q", ex.Func)
		}
		for _, a := range ex.Args {
			c.checkExp(a, res)
		}
	case ast.Forall:
		names := make([]string, len(ex.Vars))
		for i, v := range ex.Vars {
			names[i] = v.Name
			if !validUserDefinedIdentifier(v.Name, c.Policy) {
				res.add("invalid bound variable identifier %q", v.Name)
			}
		}
		if !noDuplicates(names) {
			res.add("quantifier binds the same variable name more than once")
		}
		c.checkExp(ex.Body, res)
	case ast.Exists:
		names := make([]string, len(ex.Vars))
		for i, v := range ex.Vars {
			names[i] = v.Name
			if !validUserDefinedIdentifier(v.Name, c.Policy) {
				res.add("invalid bound variable identifier %q", v.Name)
			}
		}
		if !noDuplicates(names) {
			res.add("quantifier binds the same variable name more than once")
		}
		c.checkExp(ex.Body, res)
	default:
		for _, child := range e.Children() {
			if childExp, ok := child.(ast.Exp); ok {
				c.checkExp(childExp, res)
			}
		}
	}
}

package ast

import "github.com/rvandoren/silver/rewrite"

// Stmt is the closed union of structured-statement node kinds:
// sequencing, conditionals, loops, labels, gotos, and the opaque
// "regular" leaves. Every concrete Stmt also implements rewrite.Node.
type Stmt interface {
	rewrite.Node
	Pos() Position
	Equal(other rewrite.Node) bool
	isStmt()
}

// Seqn is an ordered sequence of statements, possibly empty.
type Seqn struct {
	base
	Stmts []Stmt
}

func (n Seqn) isStmt() {}
func (n Seqn) Children() []rewrite.Node {
	cs := make([]rewrite.Node, len(n.Stmts))
	for i, s := range n.Stmts {
		cs[i] = s
	}
	return cs
}
func (n Seqn) WithChildren(c []rewrite.Node) rewrite.Node {
	stmts := make([]Stmt, len(c))
	for i, cc := range c {
		stmts[i] = cc.(Stmt)
	}
	n.Stmts = stmts
	return n
}
func (n Seqn) Equal(other rewrite.Node) bool {
	o, ok := other.(Seqn)
	if !ok || len(n.Stmts) != len(o.Stmts) {
		return false
	}
	for i := range n.Stmts {
		if !n.Stmts[i].Equal(o.Stmts[i]) {
			return false
		}
	}
	return true
}

// If is a two-armed conditional; Else is commonly a Seqn with no
// statements when the source had no else branch.
type If struct {
	base
	Cond       Exp
	Then, Else Stmt
}

func (n If) isStmt() {}
func (n If) Children() []rewrite.Node {
	return []rewrite.Node{n.Cond, n.Then, n.Else}
}
func (n If) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Cond, n.Then, n.Else = c[0].(Exp), c[1].(Stmt), c[2].(Stmt)
	return n
}
func (n If) Equal(other rewrite.Node) bool {
	o, ok := other.(If)
	return ok && n.Cond.Equal(o.Cond) && n.Then.Equal(o.Then) && n.Else.Equal(o.Else)
}

// While is a structured loop with an explicit invariant list.
type While struct {
	base
	Cond       Exp
	Invariants []Exp
	Body       Stmt
}

func (n While) isStmt() {}
func (n While) Children() []rewrite.Node {
	cs := make([]rewrite.Node, 0, len(n.Invariants)+2)
	cs = append(cs, n.Cond)
	for _, inv := range n.Invariants {
		cs = append(cs, inv)
	}
	cs = append(cs, n.Body)
	return cs
}
func (n While) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Cond = c[0].(Exp)
	invs := make([]Exp, len(n.Invariants))
	for i := range invs {
		invs[i] = c[1+i].(Exp)
	}
	n.Invariants = invs
	n.Body = c[len(c)-1].(Stmt)
	return n
}
func (n While) Equal(other rewrite.Node) bool {
	o, ok := other.(While)
	if !ok || len(n.Invariants) != len(o.Invariants) {
		return false
	}
	if !n.Cond.Equal(o.Cond) || !n.Body.Equal(o.Body) {
		return false
	}
	for i := range n.Invariants {
		if !n.Invariants[i].Equal(o.Invariants[i]) {
			return false
		}
	}
	return true
}

// Label declares a jump target; Goto is an unrestricted jump to one.
type Label struct {
	base
	Name string
}

func (n Label) isStmt()                                  {}
func (n Label) Children() []rewrite.Node                {  return leaf() }
func (n Label) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n Label) Equal(other rewrite.Node) bool {
	o, ok := other.(Label)
	return ok && n.Name == o.Name
}

type Goto struct {
	base
	Target string
}

func (n Goto) isStmt()                                  {}
func (n Goto) Children() []rewrite.Node                {  return leaf() }
func (n Goto) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n Goto) Equal(other rewrite.Node) bool {
	o, ok := other.(Goto)
	return ok && n.Target == o.Target
}

// ---- Opaque "regular" leaf statements ----
//
// Their internals are opaque to the cfg package: it treats each as a
// single atomic side-effecting unit that contributes exactly one
// RegularStmt extended statement and never branches control flow. The
// concrete shapes below are enough to exercise the consistency checker's
// identifier/assignability rules without inventing the full
// expression/declaration surface a verifier would have.

// LocalVarAssign assigns an expression to a local variable.
type LocalVarAssign struct {
	base
	Lhs LocalVar
	Rhs Exp
}

func (n LocalVarAssign) isStmt() {}
func (n LocalVarAssign) Children() []rewrite.Node { return []rewrite.Node{n.Rhs} }
func (n LocalVarAssign) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Rhs = c[0].(Exp)
	return n
}
func (n LocalVarAssign) Equal(other rewrite.Node) bool {
	o, ok := other.(LocalVarAssign)
	return ok && n.Lhs.Equal(o.Lhs) && n.Rhs.Equal(o.Rhs)
}

// FieldAssign assigns an expression to an object field.
type FieldAssign struct {
	base
	Receiver Exp
	Field    string
	Rhs      Exp
}

func (n FieldAssign) isStmt() {}
func (n FieldAssign) Children() []rewrite.Node {
	return []rewrite.Node{n.Receiver, n.Rhs}
}
func (n FieldAssign) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Receiver, n.Rhs = c[0].(Exp), c[1].(Exp)
	return n
}
func (n FieldAssign) Equal(other rewrite.Node) bool {
	o, ok := other.(FieldAssign)
	return ok && n.Field == o.Field && n.Receiver.Equal(o.Receiver) && n.Rhs.Equal(o.Rhs)
}

// Inhale assumes an assertion holds (gains permission/knowledge);
// Exhale asserts and then gives up an assertion (checks, loses permission).
type Inhale struct {
	base
	Assertion Exp
}

func (n Inhale) isStmt()                   {}
func (n Inhale) Children() []rewrite.Node { return []rewrite.Node{n.Assertion} }
func (n Inhale) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Assertion = c[0].(Exp)
	return n
}
func (n Inhale) Equal(other rewrite.Node) bool {
	o, ok := other.(Inhale)
	return ok && n.Assertion.Equal(o.Assertion)
}

type Exhale struct {
	base
	Assertion Exp
}

func (n Exhale) isStmt()                   {}
func (n Exhale) Children() []rewrite.Node { return []rewrite.Node{n.Assertion} }
func (n Exhale) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Assertion = c[0].(Exp)
	return n
}
func (n Exhale) Equal(other rewrite.Node) bool {
	o, ok := other.(Exhale)
	return ok && n.Assertion.Equal(o.Assertion)
}

// Fold/Unfold exchange a predicate instance's body for the (un)folded
// predicate resource.
type Fold struct {
	base
	Predicate FuncApp
}

func (n Fold) isStmt()                   {}
func (n Fold) Children() []rewrite.Node { return []rewrite.Node{n.Predicate} }
func (n Fold) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Predicate = c[0].(FuncApp)
	return n
}
func (n Fold) Equal(other rewrite.Node) bool {
	o, ok := other.(Fold)
	return ok && n.Predicate.Equal(o.Predicate)
}

type Unfold struct {
	base
	Predicate FuncApp
}

func (n Unfold) isStmt()                   {}
func (n Unfold) Children() []rewrite.Node { return []rewrite.Node{n.Predicate} }
func (n Unfold) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Predicate = c[0].(FuncApp)
	return n
}
func (n Unfold) Equal(other rewrite.Node) bool {
	o, ok := other.(Unfold)
	return ok && n.Predicate.Equal(o.Predicate)
}

// MethodCall invokes an external method declaration, binding its results
// to local variables.
type MethodCall struct {
	base
	Method  string
	Args    []Exp
	Targets []LocalVar
}

func (n MethodCall) isStmt() {}
func (n MethodCall) Children() []rewrite.Node {
	cs := make([]rewrite.Node, len(n.Args))
	for i, a := range n.Args {
		cs[i] = a
	}
	return cs
}
func (n MethodCall) WithChildren(c []rewrite.Node) rewrite.Node {
	args := make([]Exp, len(c))
	for i, cc := range c {
		args[i] = cc.(Exp)
	}
	n.Args = args
	return n
}
func (n MethodCall) Equal(other rewrite.Node) bool {
	o, ok := other.(MethodCall)
	if !ok || n.Method != o.Method || len(n.Args) != len(o.Args) || len(n.Targets) != len(o.Targets) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	for i := range n.Targets {
		if !n.Targets[i].Equal(o.Targets[i]) {
			return false
		}
	}
	return true
}

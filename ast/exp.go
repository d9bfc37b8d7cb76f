package ast

import (
	"fmt"
	"math/big"

	"github.com/rvandoren/silver/rewrite"
)

// Exp is the closed union of expression node kinds. Every concrete Exp
// also implements rewrite.Node, so any Exp tree can be run through the
// generic rewrite engine without package rewrite knowing anything about
// expressions.
type Exp interface {
	rewrite.Node
	Pos() Position
	Typ() Typ
	Equal(other rewrite.Node) bool
	isExp()
}

// base carries the fields every node has regardless of variant: its
// source position and caller-supplied metadata.
type base struct {
	Position Position
	Info     Info
}

func (b base) Pos() Position { return b.Position }

func leaf() []rewrite.Node { return nil }

func sameType(t1, t2 Typ) bool {
	if t1 == nil || t2 == nil {
		return t1 == t2
	}
	return t1.Name() == t2.Name()
}

// ---- Boolean ----

type Not struct {
	base
	Exp Exp
}

func (n Not) isExp()                       {}
func (n Not) Typ() Typ                     { return Bool{} }
func (n Not) Children() []rewrite.Node     { return []rewrite.Node{n.Exp} }
func (n Not) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Exp = c[0].(Exp)
	return n
}
func (n Not) Equal(other rewrite.Node) bool {
	o, ok := other.(Not)
	return ok && n.Exp.Equal(o.Exp)
}

type binBool struct {
	base
	Left, Right Exp
}

func (n binBool) Typ() Typ                 { return Bool{} }
func (n binBool) Children() []rewrite.Node { return []rewrite.Node{n.Left, n.Right} }

type And struct{ binBool }

func (n And) isExp() {}
func (n And) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n And) Equal(other rewrite.Node) bool {
	o, ok := other.(And)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type Or struct{ binBool }

func (n Or) isExp() {}
func (n Or) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Or) Equal(other rewrite.Node) bool {
	o, ok := other.(Or)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type Implies struct{ binBool }

func (n Implies) isExp() {}
func (n Implies) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Implies) Equal(other rewrite.Node) bool {
	o, ok := other.(Implies)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type TrueLit struct{ base }

func (n TrueLit) isExp()                                  {}
func (n TrueLit) Typ() Typ                                { return Bool{} }
func (n TrueLit) Children() []rewrite.Node                { return leaf() }
func (n TrueLit) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n TrueLit) Equal(other rewrite.Node) bool {
	_, ok := other.(TrueLit)
	return ok
}

type FalseLit struct{ base }

func (n FalseLit) isExp()                                  {}
func (n FalseLit) Typ() Typ                                { return Bool{} }
func (n FalseLit) Children() []rewrite.Node                { return leaf() }
func (n FalseLit) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n FalseLit) Equal(other rewrite.Node) bool {
	_, ok := other.(FalseLit)
	return ok
}

// ---- Arithmetic ----

type binArith struct {
	base
	Left, Right Exp
}

func (n binArith) Typ() Typ                 { return Int{} }
func (n binArith) Children() []rewrite.Node { return []rewrite.Node{n.Left, n.Right} }

type Add struct{ binArith }

func (n Add) isExp() {}
func (n Add) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Add) Equal(other rewrite.Node) bool {
	o, ok := other.(Add)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type Sub struct{ binArith }

func (n Sub) isExp() {}
func (n Sub) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Sub) Equal(other rewrite.Node) bool {
	o, ok := other.(Sub)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type Mul struct{ binArith }

func (n Mul) isExp() {}
func (n Mul) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Mul) Equal(other rewrite.Node) bool {
	o, ok := other.(Mul)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type Div struct{ binArith }

func (n Div) isExp() {}
func (n Div) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n Div) Equal(other rewrite.Node) bool {
	o, ok := other.(Div)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

// ---- Comparison ----

type binCmp struct {
	base
	Left, Right Exp
}

func (n binCmp) Typ() Typ                 { return Bool{} }
func (n binCmp) Children() []rewrite.Node { return []rewrite.Node{n.Left, n.Right} }

type EqCmp struct{ binCmp }

func (n EqCmp) isExp() {}
func (n EqCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n EqCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(EqCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type NeCmp struct{ binCmp }

func (n NeCmp) isExp() {}
func (n NeCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n NeCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(NeCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type LtCmp struct{ binCmp }

func (n LtCmp) isExp() {}
func (n LtCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n LtCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(LtCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type LeCmp struct{ binCmp }

func (n LeCmp) isExp() {}
func (n LeCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n LeCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(LeCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type GtCmp struct{ binCmp }

func (n GtCmp) isExp() {}
func (n GtCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n GtCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(GtCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

type GeCmp struct{ binCmp }

func (n GeCmp) isExp() {}
func (n GeCmp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Left, n.Right = c[0].(Exp), c[1].(Exp)
	return n
}
func (n GeCmp) Equal(other rewrite.Node) bool {
	o, ok := other.(GeCmp)
	return ok && n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

// ---- Quantifiers ----

// BoundVar is a quantifier-bound variable declaration: a name and type,
// not itself an Exp (it only ever appears inside Forall/Exists's Vars).
type BoundVar struct {
	Name string
	Type Typ
}

type Forall struct {
	base
	Vars []BoundVar
	Body Exp
}

func (n Forall) isExp()   {}
func (n Forall) Typ() Typ { return Bool{} }
func (n Forall) Children() []rewrite.Node { return []rewrite.Node{n.Body} }
func (n Forall) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Body = c[0].(Exp)
	return n
}
func (n Forall) Equal(other rewrite.Node) bool {
	o, ok := other.(Forall)
	if !ok || len(n.Vars) != len(o.Vars) {
		return false
	}
	for i := range n.Vars {
		if n.Vars[i].Name != o.Vars[i].Name || !sameType(n.Vars[i].Type, o.Vars[i].Type) {
			return false
		}
	}
	return n.Body.Equal(o.Body)
}

type Exists struct {
	base
	Vars []BoundVar
	Body Exp
}

func (n Exists) isExp()   {}
func (n Exists) Typ() Typ { return Bool{} }
func (n Exists) Children() []rewrite.Node { return []rewrite.Node{n.Body} }
func (n Exists) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Body = c[0].(Exp)
	return n
}
func (n Exists) Equal(other rewrite.Node) bool {
	o, ok := other.(Exists)
	if !ok || len(n.Vars) != len(o.Vars) {
		return false
	}
	for i := range n.Vars {
		if n.Vars[i].Name != o.Vars[i].Name || !sameType(n.Vars[i].Type, o.Vars[i].Type) {
			return false
		}
	}
	return n.Body.Equal(o.Body)
}

// ---- Literals, variables, application, conditional ----

// IntLit is an arbitrary-precision integer literal.
type IntLit struct {
	base
	Value *big.Int
}

func (n IntLit) isExp()                                  {}
func (n IntLit) Typ() Typ                                { return Int{} }
func (n IntLit) Children() []rewrite.Node                { return leaf() }
func (n IntLit) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n IntLit) Equal(other rewrite.Node) bool {
	o, ok := other.(IntLit)
	return ok && n.Value.Cmp(o.Value) == 0
}

// NewIntLit is a convenience constructor for int-sized literals.
func NewIntLit(v int64) IntLit {
	return IntLit{Value: big.NewInt(v)}
}

type LocalVar struct {
	base
	Name string
	Type Typ
}

func (n LocalVar) isExp()                                  {}
func (n LocalVar) Typ() Typ                                { return n.Type }
func (n LocalVar) Children() []rewrite.Node                { return leaf() }
func (n LocalVar) WithChildren(c []rewrite.Node) rewrite.Node { return n }
func (n LocalVar) Equal(other rewrite.Node) bool {
	o, ok := other.(LocalVar)
	return ok && n.Name == o.Name && sameType(n.Type, o.Type)
}

// FuncApp is a call to an external function/predicate declaration. The
// concrete function/predicate declarations are out of scope here;
// FuncApp only needs the callee's name and declared return type.
type FuncApp struct {
	base
	Func string
	Args []Exp
	Type Typ
}

func (n FuncApp) isExp() {}
func (n FuncApp) Typ() Typ { return n.Type }
func (n FuncApp) Children() []rewrite.Node {
	cs := make([]rewrite.Node, len(n.Args))
	for i, a := range n.Args {
		cs[i] = a
	}
	return cs
}
func (n FuncApp) WithChildren(c []rewrite.Node) rewrite.Node {
	args := make([]Exp, len(c))
	for i, cc := range c {
		args[i] = cc.(Exp)
	}
	n.Args = args
	return n
}
func (n FuncApp) Equal(other rewrite.Node) bool {
	o, ok := other.(FuncApp)
	if !ok || n.Func != o.Func || len(n.Args) != len(o.Args) || !sameType(n.Type, o.Type) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (n FuncApp) String() string { return fmt.Sprintf("%s(...)", n.Func) }

type CondExp struct {
	base
	Cond, Then, Else Exp
}

func (n CondExp) isExp()   {}
func (n CondExp) Typ() Typ { return n.Then.Typ() }
func (n CondExp) Children() []rewrite.Node {
	return []rewrite.Node{n.Cond, n.Then, n.Else}
}
func (n CondExp) WithChildren(c []rewrite.Node) rewrite.Node {
	n.Cond, n.Then, n.Else = c[0].(Exp), c[1].(Exp), c[2].(Exp)
	return n
}
func (n CondExp) Equal(other rewrite.Node) bool {
	o, ok := other.(CondExp)
	return ok && n.Cond.Equal(o.Cond) && n.Then.Equal(o.Then) && n.Else.Equal(o.Else)
}

package ast

// Typ is the narrow interface this module needs from a type system; the
// full domain type lattice (generic type parameters, user-defined domains
// with axioms, etc.) is an external collaborator's concern — this module
// only needs enough of a type lattice to exercise Exp.Typ(), expression
// well-typedness in the consistency checker, and ConditionalBlock.Cond's
// "must be Boolean-typed" invariant.
type Typ interface {
	// Name is the type's printable name, used for error messages and
	// struct-level equality checks.
	Name() string

	// isType is unexported so Typ remains a closed union of the variants
	// defined in this file, mirroring the closed-union treatment of Stmt
	// and Exp.
	isType()
}

// Bool is the type of every Boolean-valued expression: TrueLit, FalseLit,
// Not, And, Or, Implies, the comparison operators, Forall and Exists.
type Bool struct{}

func (Bool) Name() string { return "Bool" }
func (Bool) isType()      {}

// Int is the type of IntLit and of arithmetic expressions.
type Int struct{}

func (Int) Name() string { return "Int" }
func (Int) isType()      {}

// Ref is the type of object references (the operand of field assignment,
// fold, unfold, and method-call receivers).
type Ref struct{}

func (Ref) Name() string { return "Ref" }
func (Ref) isType()      {}

// Perm is the type of permission amounts (the operand of inhale/exhale
// access predicates); carried as a distinct type rather than folding
// permission arithmetic into Int.
type Perm struct{}

func (Perm) Name() string { return "Perm" }
func (Perm) isType()      {}

// Domain is a placeholder for a user-defined domain type. The full
// verifier's domain-type declarations (type parameters, axioms) are out of
// scope here; this carries just enough — a name and a declared
// parent relation used by IsAssignableTo — to let FuncApp/LocalVar
// reference domain-typed values and let the consistency checker validate
// assignability between them.
type Domain struct {
	DomainName string
	// Parents lists the domain names this domain is declared assignable
	// to, besides itself. A nil/empty Parents means only self-assignable.
	Parents []string
}

func (d Domain) Name() string { return d.DomainName }
func (Domain) isType()        {}

// IsAssignableTo reports whether a value of type from may be assigned to a
// location of type to. Built-in
// types are only assignable to themselves; Domain types are additionally
// assignable to any name listed in their Parents.
func IsAssignableTo(from, to Typ) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Name() == to.Name() {
		return true
	}
	fd, ok := from.(Domain)
	if !ok {
		return false
	}
	for _, p := range fd.Parents {
		if p == to.Name() {
			return true
		}
	}
	return false
}

// AreAssignable zips IsAssignableTo over two equal-length slices. It
// reports false (never panics) when the slices
// differ in length.
func AreAssignable(from, to []Typ) bool {
	if len(from) != len(to) {
		return false
	}
	for i := range from {
		if !IsAssignableTo(from[i], to[i]) {
			return false
		}
	}
	return true
}

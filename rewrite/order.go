package rewrite

// Order selects when a strategy's rule fires relative to descending into
// a node's children.
type Order int

const (
	// TopDown applies the rule to a node before descending into its
	// (possibly already-rewritten) children.
	TopDown Order = iota
	// BottomUp descends into a node's original children first, rebuilds
	// the node if any child changed, and only then applies the rule to
	// the rebuilt node.
	BottomUp
	// Innermost behaves like BottomUp but re-applies the rule at the
	// rebuilt node repeatedly until it stops firing, so that a single
	// traversal folds nested redexes all the way down.
	Innermost
)

// RecurseFilter selects which of a node's children a traversal recurses
// into. It must return a slice the same length as n.Children(); a false
// entry skips that child (the child is carried through to the rebuilt
// parent unchanged). A nil RecurseFilter recurses into every child.
type RecurseFilter func(n Node) []bool

func (f RecurseFilter) selection(n Node, numChildren int) []bool {
	if f == nil {
		sel := make([]bool, numChildren)
		for i := range sel {
			sel[i] = true
		}
		return sel
	}
	return f(n)
}

// rebuildWith applies a RecurseFilter-filtered transform to n's children and
// reconstructs n if any selected child actually changed. changed reports
// whether the returned Node differs from n.
func rebuildWith(n Node, filter RecurseFilter, transform func(Node) Node) (result Node, changed bool) {
	children := n.Children()
	if len(children) == 0 {
		return n, false
	}
	sel := filter.selection(n, len(children))
	newChildren := make([]Node, len(children))
	any := false
	for i, c := range children {
		if i < len(sel) && sel[i] {
			nc := transform(c)
			newChildren[i] = nc
			if !nodesEqual(nc, c) {
				any = true
			}
		} else {
			newChildren[i] = c
		}
	}
	if !any {
		return n, false
	}
	return n.WithChildren(newChildren), true
}

package rewrite

// Rule is a partial rewrite function: when it is not defined at n it
// returns (nil, false) and the traversal treats n as unchanged, a
// silent no-op rather than an error. When defined, it returns the
// replacement node and true.
type Rule func(n Node) (Node, bool)

// Strategy is the plain rewriting strategy: f : Node ⇀ Node, with a
// configurable traversal Order and per-node RecurseFilter.
type Strategy struct {
	rule   Rule
	order  Order
	filter RecurseFilter
}

// NewStrategy builds a TopDown Strategy around rule. Use WithOrder and
// WithRecurseFilter to configure it further before Execute.
func NewStrategy(rule Rule) *Strategy {
	return &Strategy{rule: rule, order: TopDown}
}

// WithOrder sets the traversal order and returns the receiver for
// fluent configuration.
func (s *Strategy) WithOrder(o Order) *Strategy {
	s.order = o
	return s
}

// WithRecurseFilter sets the per-node child-selection filter.
func (s *Strategy) WithRecurseFilter(f RecurseFilter) *Strategy {
	s.filter = f
	return s
}

// Execute runs the strategy over n and returns the rewritten tree.
func (s *Strategy) Execute(n Node) Node {
	switch s.order {
	case BottomUp:
		return s.execBottomUp(n)
	case Innermost:
		return s.execInnermost(n)
	default:
		return s.execTopDown(n)
	}
}

func (s *Strategy) apply(n Node) Node {
	if s.rule == nil {
		return n
	}
	if r, ok := s.rule(n); ok {
		return r
	}
	return n
}

func (s *Strategy) execTopDown(n Node) Node {
	n2 := s.apply(n)
	result, _ := rebuildWith(n2, s.filter, s.execTopDown)
	return result
}

func (s *Strategy) execBottomUp(n Node) Node {
	rebuilt, _ := rebuildWith(n, s.filter, s.execBottomUp)
	return s.apply(rebuilt)
}

func (s *Strategy) execInnermost(n Node) Node {
	rebuilt, _ := rebuildWith(n, s.filter, s.execInnermost)
	for {
		next := s.apply(rebuilt)
		if nodesEqual(next, rebuilt) {
			return rebuilt
		}
		rebuilt = next
	}
}

// Plus implements the "s1 + s2" combinator: at each node, s's rule is
// tried first and wins if it matches; otherwise other's rule is tried.
// Children are traversed once, using the receiver's order and filter.
func (s *Strategy) Plus(other *Strategy) *Strategy {
	r1, r2 := s.rule, other.rule
	combined := func(n Node) (Node, bool) {
		if r1 != nil {
			if r, ok := r1(n); ok {
				return r, true
			}
		}
		if r2 != nil {
			return r2(n)
		}
		return nil, false
	}
	return &Strategy{rule: combined, order: s.order, filter: s.filter}
}

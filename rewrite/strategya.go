package rewrite

// AncestorRule is an ancestor-aware partial rewrite function: f : (Node,
// AncestorInfo) ⇀ Node.
type AncestorRule func(n Node, info AncestorInfo) (Node, bool)

// StrategyA is the ancestor-propagating strategy. Ancestor info is
// derived from the spine during descent and is never backed by
// process-wide state.
type StrategyA struct {
	rule   AncestorRule
	order  Order
	filter RecurseFilter
}

// NewStrategyA builds a TopDown StrategyA around rule.
func NewStrategyA(rule AncestorRule) *StrategyA {
	return &StrategyA{rule: rule, order: TopDown}
}

func (s *StrategyA) WithOrder(o Order) *StrategyA {
	s.order = o
	return s
}

func (s *StrategyA) WithRecurseFilter(f RecurseFilter) *StrategyA {
	s.filter = f
	return s
}

// Execute runs the strategy over n, treating n as the root of the tree
// (its AncestorInfo has no parent/ancestors).
func (s *StrategyA) Execute(n Node) Node {
	switch s.order {
	case BottomUp:
		return s.execBottomUp(n, rootAncestorInfo(n))
	case Innermost:
		return s.execInnermost(n, rootAncestorInfo(n))
	default:
		return s.execTopDown(n, rootAncestorInfo(n))
	}
}

func (s *StrategyA) apply(n Node, info AncestorInfo) Node {
	if s.rule == nil {
		return n
	}
	if r, ok := s.rule(n, info); ok {
		return r
	}
	return n
}

func (s *StrategyA) execTopDown(n Node, info AncestorInfo) Node {
	n2 := s.apply(n, info)
	children := n2.Children()
	if len(children) == 0 {
		return n2
	}
	sel := s.filter.selection(n2, len(children))
	newChildren := make([]Node, len(children))
	any := false
	for i, c := range children {
		if i < len(sel) && sel[i] {
			childInfo := childAncestorInfo(n2, info, children, i)
			nc := s.execTopDown(c, childInfo)
			newChildren[i] = nc
			if !nodesEqual(nc, c) {
				any = true
			}
		} else {
			newChildren[i] = c
		}
	}
	if !any {
		return n2
	}
	return n2.WithChildren(newChildren)
}

func (s *StrategyA) execBottomUp(n Node, info AncestorInfo) Node {
	rebuilt := s.descendAndRebuild(n, info, s.execBottomUp)
	return s.apply(rebuilt, info)
}

func (s *StrategyA) execInnermost(n Node, info AncestorInfo) Node {
	rebuilt := s.descendAndRebuild(n, info, s.execInnermost)
	for {
		next := s.apply(rebuilt, info)
		if nodesEqual(next, rebuilt) {
			return rebuilt
		}
		rebuilt = next
	}
}

func (s *StrategyA) descendAndRebuild(n Node, info AncestorInfo, recurse func(Node, AncestorInfo) Node) Node {
	children := n.Children()
	if len(children) == 0 {
		return n
	}
	sel := s.filter.selection(n, len(children))
	newChildren := make([]Node, len(children))
	any := false
	for i, c := range children {
		if i < len(sel) && sel[i] {
			childInfo := childAncestorInfo(n, info, children, i)
			nc := recurse(c, childInfo)
			newChildren[i] = nc
			if !nodesEqual(nc, c) {
				any = true
			}
		} else {
			newChildren[i] = c
		}
	}
	if !any {
		return n
	}
	return n.WithChildren(newChildren)
}

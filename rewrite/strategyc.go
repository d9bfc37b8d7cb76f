package rewrite

// ContextRule is a context-aware partial rewrite function: f : (Node,
// Context<C>) ⇀ Node.
type ContextRule[C any] func(n Node, ctx C) (Node, bool)

// ContextUpdate computes the context passed down to child from the
// context flowing through parent: descent into a child first runs
// updateContext(current, child-input). The default update, used when
// none is configured, is the identity: a child inherits its parent's
// context unchanged.
type ContextUpdate[C any] func(parent, child Node, ctx C) C

// StrategyC is the context-propagating strategy. The context travels
// down the spine of the traversal on the call stack (it is never backed
// by process-wide state); two
// sibling subtrees traversed from the same parent each see the context
// computed independently for their own position and do not observe each
// other's.
type StrategyC[C any] struct {
	rule    ContextRule[C]
	update  ContextUpdate[C]
	order   Order
	filter  RecurseFilter
	initial C
}

// NewStrategyC builds a TopDown StrategyC with the given rule and initial
// context value used by Execute.
func NewStrategyC[C any](rule ContextRule[C], initial C) *StrategyC[C] {
	return &StrategyC[C]{rule: rule, order: TopDown, initial: initial}
}

func (s *StrategyC[C]) WithOrder(o Order) *StrategyC[C] {
	s.order = o
	return s
}

func (s *StrategyC[C]) WithRecurseFilter(f RecurseFilter) *StrategyC[C] {
	s.filter = f
	return s
}

// WithContextUpdate sets the child-context derivation function.
func (s *StrategyC[C]) WithContextUpdate(u ContextUpdate[C]) *StrategyC[C] {
	s.update = u
	return s
}

// Execute runs the strategy over n starting from the configured initial
// context, satisfying the Executor interface so StrategyC composes with
// Seq/Then/Repeat like a plain Strategy.
func (s *StrategyC[C]) Execute(n Node) Node {
	return s.ExecuteWithContext(n, s.initial)
}

// ExecuteWithContext runs the strategy over n starting from an explicit
// context, for callers that want to seed a sub-traversal with a context
// other than the strategy's configured initial value.
func (s *StrategyC[C]) ExecuteWithContext(n Node, ctx C) Node {
	switch s.order {
	case BottomUp:
		return s.execBottomUp(n, ctx)
	case Innermost:
		return s.execInnermost(n, ctx)
	default:
		return s.execTopDown(n, ctx)
	}
}

func (s *StrategyC[C]) apply(n Node, ctx C) Node {
	if s.rule == nil {
		return n
	}
	if r, ok := s.rule(n, ctx); ok {
		return r
	}
	return n
}

func (s *StrategyC[C]) childCtx(parent, child Node, ctx C) C {
	if s.update == nil {
		return ctx
	}
	return s.update(parent, child, ctx)
}

func (s *StrategyC[C]) execTopDown(n Node, ctx C) Node {
	n2 := s.apply(n, ctx)
	children := n2.Children()
	if len(children) == 0 {
		return n2
	}
	sel := s.filter.selection(n2, len(children))
	newChildren := make([]Node, len(children))
	any := false
	for i, c := range children {
		if i < len(sel) && sel[i] {
			nc := s.execTopDown(c, s.childCtx(n2, c, ctx))
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

func (s *StrategyC[C]) execBottomUp(n Node, ctx C) Node {
	children := n.Children()
	rebuilt := Node(n)
	if len(children) > 0 {
		sel := s.filter.selection(n, len(children))
		newChildren := make([]Node, len(children))
		any := false
		for i, c := range children {
			if i < len(sel) && sel[i] {
				nc := s.execBottomUp(c, s.childCtx(n, c, ctx))
				newChildren[i] = nc
				if !nodesEqual(nc, c) {
					any = true
				}
			} else {
				newChildren[i] = c
			}
		}
		if any {
			rebuilt = n.WithChildren(newChildren)
		}
	}
	return s.apply(rebuilt, ctx)
}

func (s *StrategyC[C]) execInnermost(n Node, ctx C) Node {
	rebuilt := s.execBottomUpNoRule(n, ctx)
	for {
		next := s.apply(rebuilt, ctx)
		if nodesEqual(next, rebuilt) {
			return rebuilt
		}
		rebuilt = next
	}
}

// execBottomUpNoRule performs just the descend-and-rebuild half of
// execBottomUp for each child (each child still gets the full Innermost
// treatment), leaving the rule application at this node to the caller's
// fixpoint loop.
func (s *StrategyC[C]) execBottomUpNoRule(n Node, ctx C) Node {
	children := n.Children()
	if len(children) == 0 {
		return n
	}
	sel := s.filter.selection(n, len(children))
	newChildren := make([]Node, len(children))
	any := false
	for i, c := range children {
		if i < len(sel) && sel[i] {
			nc := s.execInnermost(c, s.childCtx(n, c, ctx))
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

package rewrite

// Executor is implemented by every strategy kind (Strategy, StrategyC,
// StrategyA) and is the type the combinators in this file operate over:
// they compose strategies of the same tree type. Query is read-only and
// deliberately does not implement Executor; it is folded, not composed,
// with these combinators.
type Executor interface {
	Execute(n Node) Node
}

type funcExecutor func(Node) Node

func (f funcExecutor) Execute(n Node) Node { return f(n) }

// Seq implements the "a || b" combinator: run a over the whole tree, then
// run b over a's output, i.e. (s1||s2).execute(n) == s2.execute(s1.execute(n)).
func Seq(a, b Executor) Executor {
	return funcExecutor(func(n Node) Node {
		return b.Execute(a.Execute(n))
	})
}

// Then implements the "a < b" combinator: run a; if its result differs
// from the input, run b on that result; otherwise stop. Used for layered
// simplification passes that should only cascade when the earlier pass
// actually did something.
func Then(a, b Executor) Executor {
	return funcExecutor(func(n Node) Node {
		r := a.Execute(n)
		if nodesEqual(r, n) {
			return r
		}
		return b.Execute(r)
	})
}

// Repeat implements the ".repeat" combinator: reapply a until the tree
// stabilizes. Applying repeat twice equals applying it once, since the
// first call already reaches a fixpoint.
func Repeat(a Executor) Executor {
	return funcExecutor(func(n Node) Node {
		cur := n
		for {
			next := a.Execute(cur)
			if nodesEqual(next, cur) {
				return cur
			}
			cur = next
		}
	})
}

package cfg

import "github.com/rvandoren/silver/ast"

// AssertionViolation is panicked when a two-edge varBlock's edges don't
// satisfy the invariant that the second edge's condition must be the
// negation of the first's. By construction the builder never produces
// such a block, so this indicates a generator bug rather than an
// ill-formed input program — hence panic rather than a returned error,
// unlike StructuralError.
type AssertionViolation struct {
	Message string
}

func (e *AssertionViolation) Error() string { return "cfg: assertion violation: " + e.Message }

func combinedStmt(stmts []ast.Stmt) ast.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return ast.Seqn{Stmts: stmts}
}

// materializer implements Phase 4: a two-pass allocate-then-wire walk
// that lets the final, immutable Block graph contain
// cycles (a LoopBlock's body reaching back around to itself) without ever
// constructing a Block with a nil field that should hold a successor.
//
// Grounded on extras/cfg's two-pass approach to wiring a graph that can
// contain back-edges: that package's CFG builds all vertices first (via
// getVertex) and only wires edges (addEdge) once every vertex it might
// reference already exists, for the same reason — a back-edge's target
// may not exist yet the first time it is mentioned.
type materializer struct {
	final map[tmpBlock]Block
}

func newMaterializer() *materializer {
	return &materializer{final: make(map[tmpBlock]Block)}
}

// materialize runs both passes starting from root and returns root's
// final counterpart.
func (m *materializer) materialize(root tmpBlock) Block {
	order := m.allocate(root)
	m.wire(order)
	return m.final[root]
}

// allocate is Pass A: BFS the temporary graph (descending into LoopBlock
// bodies, unlike the final Walk helper, since a body must be materialized
// too) and create a zero-valued final counterpart for every block
// reached. Returns the visiting order, replayed unchanged by wire so pass
// B never has to re-discover reachability.
func (m *materializer) allocate(root tmpBlock) []tmpBlock {
	var order []tmpBlock
	seen := map[tmpBlock]bool{root: true}
	queue := []tmpBlock{root}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		order = append(order, t)

		switch v := t.(type) {
		case *varBlock:
			switch len(v.edges) {
			case 0:
				m.final[t] = &TerminalBlock{Stmt: combinedStmt(v.stmts)}
			case 1:
				m.final[t] = &NormalBlock{Stmt: combinedStmt(v.stmts)}
			case 2:
				m.final[t] = &ConditionalBlock{Stmt: combinedStmt(v.stmts), Cond: v.edges[0].cond}
			default:
				panic(&AssertionViolation{Message: "block has more than two outgoing edges"})
			}
			for _, e := range v.edges {
				if !seen[e.target] {
					seen[e.target] = true
					queue = append(queue, e.target)
				}
			}

		case *tmpLoopBlock:
			m.final[t] = &LoopBlock{Cond: v.cond, Invs: v.invs}
			if !seen[v.entry] {
				seen[v.entry] = true
				queue = append(queue, v.entry)
			}
			for _, e := range v.edges {
				if !seen[e.target] {
					seen[e.target] = true
					queue = append(queue, e.target)
				}
			}
		}
	}
	return order
}

// wire is Pass B: fill in each final block's successor fields now that
// every block it could reference has an allocated counterpart.
func (m *materializer) wire(order []tmpBlock) {
	for _, t := range order {
		switch v := t.(type) {
		case *varBlock:
			switch fb := m.final[t].(type) {
			case *NormalBlock:
				fb.Succ = m.final[v.edges[0].target]
			case *ConditionalBlock:
				assertNegation(v.edges[0].cond, v.edges[1].cond)
				fb.Then = m.final[v.edges[0].target]
				fb.Else = m.final[v.edges[1].target]
			}

		case *tmpLoopBlock:
			fb := m.final[t].(*LoopBlock)
			fb.Body = m.final[v.entry]
			fb.Succ = m.final[v.edges[0].target]
		}
	}
}

func assertNegation(cond, negCond ast.Exp) {
	not, ok := negCond.(ast.Not)
	if !ok || !not.Exp.Equal(cond) {
		panic(&AssertionViolation{Message: "conditional block's second edge is not the negation of its first"})
	}
}

package cfg

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/rvandoren/silver/ast"
)

// extStmt is an extended statement: a regular statement, or one of the
// synthetic jump/loop/placeholder markers the linearizer introduces
// while flattening structured control flow.
type extStmt interface {
	isExtStmt()
}

type regularStmt struct{ stmt ast.Stmt }

func (regularStmt) isExtStmt() {}

type jumpStmt struct{ target Label }

func (jumpStmt) isExtStmt() {}

type condJumpStmt struct {
	thenLbl, elseLbl Label
	cond             ast.Exp
}

func (condJumpStmt) isExtStmt() {}

type loopStmt struct {
	afterLbl Label
	cond     ast.Exp
	invs     []ast.Exp
}

func (loopStmt) isExtStmt() {}

// emptyStmt carries no semantics; it exists so every structured construct
// contributes at least one node, making every "address of next" index
// bound by the linearizer valid.
type emptyStmt struct{}

func (emptyStmt) isExtStmt() {}

// linearResult is the output of Phase 1: the flat extended-statement list,
// the label→index map, and the set of leader indices.
type linearResult struct {
	nodes   []extStmt
	lblmap  map[Label]int
	leaders *bitset.BitSet
}

// linearizer implements Phase 1. Grounded on extras/cfg/cfg.go's
// buildStmt-style dispatch-by-type switch, restructured to emit a flat
// list with deferred label bindings instead of a vertex graph.
type linearizer struct {
	gen     *labelGen
	nodes   []extStmt
	lblmap  map[Label]int
	leaders *bitset.BitSet
}

func newLinearizer(gen *labelGen) *linearizer {
	return &linearizer{
		gen:     gen,
		lblmap:  make(map[Label]int),
		leaders: bitset.New(0),
	}
}

func (l *linearizer) next() int { return len(l.nodes) }

func (l *linearizer) emit(n extStmt) int {
	l.nodes = append(l.nodes, n)
	return len(l.nodes) - 1
}

// bind records that label resolves to the index the next emitted node
// will occupy, and marks that index as a leader: a node is a leader if
// its index was recorded in lblmap when binding a label.
func (l *linearizer) bind(lbl Label) {
	idx := l.next()
	l.lblmap[lbl] = idx
	l.leaders.Set(uint(idx))
}

func (l *linearizer) linearize(s ast.Stmt) linearResult {
	l.leaders.Set(0) // the entry node is always a basic block leader
	l.stmt(s)
	l.emit(emptyStmt{}) // final sentinel so the last real node always has a successor index
	return linearResult{nodes: l.nodes, lblmap: l.lblmap, leaders: l.leaders}
}

func (l *linearizer) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case ast.Seqn:
		l.emit(emptyStmt{})
		for _, child := range st.Stmts {
			l.stmt(child)
		}
	case ast.If:
		l.ifStmt(st)
	case ast.While:
		l.whileStmt(st)
	case ast.Label:
		l.bind(Label(st.Name))
		l.emit(emptyStmt{})
	case ast.Goto:
		// Emits the jump rather than discarding it; dropping it here would
		// silently remove the control transfer from the lowered graph.
		l.emit(jumpStmt{target: Label(st.Target)})
	default:
		l.emit(regularStmt{stmt: s})
	}
}

func (l *linearizer) ifStmt(s ast.If) {
	thenLbl := l.gen.next("then")
	elseLbl := l.gen.next("else")
	afterLbl := l.gen.next("after")

	l.emit(condJumpStmt{thenLbl: thenLbl, elseLbl: elseLbl, cond: s.Cond})
	l.bind(thenLbl)
	l.stmt(s.Then)
	l.emit(jumpStmt{target: afterLbl})
	l.bind(elseLbl)
	l.stmt(s.Else)
	l.bind(afterLbl)
}

// whileStmt linearizes the loop body inline, symmetric with ifStmt:
// the body sits between the Loop marker and the afterLbl binding, so
// Phase 2 can slice nodes[i+1:lblToIdx(after)] without a second,
// separately-triggered linearization pass over a body reference kept
// outside the main nodes slice. An emptyStmt closes the body, so a label
// bound at the very end of the body (an If's after label, a nested
// loop's after label) resolves to a node inside the body range rather
// than to the post-loop node.
func (l *linearizer) whileStmt(s ast.While) {
	afterLbl := l.gen.next("after")
	l.emit(loopStmt{afterLbl: afterLbl, cond: s.Cond, invs: s.Invariants})
	l.stmt(s.Body)
	l.emit(emptyStmt{})
	l.bind(afterLbl)
}

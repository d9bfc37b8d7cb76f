package cfg

import "github.com/rvandoren/silver/ast"

// tmpBlock is the closed union of temporary block shapes built by Phase 2,
// before Phase 4 materializes them into the final, immutable Block shapes.
type tmpBlock interface{ isTmpBlock() }

// varBlock accumulates regular statements and, once closed, the edges
// leaving it. Phase 4 reads its edge count to decide which final Block
// shape it becomes.
type varBlock struct {
	stmts []ast.Stmt
	edges []tmpEdge
}

func (*varBlock) isTmpBlock() {}

// tmpLoopBlock is a loop header: its Body points at the entry of a nested
// temporary graph built by recursively running Phase 2 over the loop's
// inline body sub-range, the same way an If's two arms are linearized
// inline rather than out-of-line.
type tmpLoopBlock struct {
	cond  ast.Exp
	invs  []ast.Exp
	entry tmpBlock // the loop body's entry block
	edges []tmpEdge // exactly one, the post-loop continuation
}

func (*tmpLoopBlock) isTmpBlock() {}

// tmpEdge is an edge out of a varBlock or tmpLoopBlock. Cond is nil for an
// unconditional edge; for a conditional block's pair of edges, the second
// edge's Cond must be the negation of the first's, checked at
// materialization time.
type tmpEdge struct {
	cond   ast.Exp // nil => unconditional
	target tmpBlock
}

// builder implements Phase 2, the block-boundary pass. Grounded on extras/cfg's
// builder type: like that type's flowTo/getVertex, edges reference their
// target through a lazily-created-or-fetched pointer (resolveOrCreate
// below mirrors getVertex's "if DNE, create and insert into the map"
// behavior) rather than a separately deferred list of edge-installer
// closures — the two techniques produce an identical result (a forward
// jump's target block gets populated once the main pass reaches it, and
// every edge that already holds the pointer observes the populated
// block), and extras/cfg's own getVertex is exactly this simpler
// lazy-map form.
type builder struct {
	nodes       []extStmt
	lblmap      map[Label]int
	leaders     interface{ Test(uint) bool }
	nodeToBlock map[int]*varBlock
}

func newBuilder(lr linearResult) *builder {
	return &builder{
		nodes:       lr.nodes,
		lblmap:      lr.lblmap,
		leaders:     lr.leaders,
		nodeToBlock: make(map[int]*varBlock),
	}
}

func (b *builder) resolveOrCreate(idx int) *varBlock {
	if existing, ok := b.nodeToBlock[idx]; ok {
		return existing
	}
	nb := &varBlock{}
	b.nodeToBlock[idx] = nb
	return nb
}

func (b *builder) resolveLabel(lbl Label) (*varBlock, error) {
	idx, ok := b.lblmap[lbl]
	if !ok {
		return nil, &StructuralError{Message: "jump to undeclared label " + string(lbl)}
	}
	return b.resolveOrCreate(idx), nil
}

// buildRange runs Phase 2 over nodes[start:end] and returns the entry
// block for that range.
func (b *builder) buildRange(start, end int) (tmpBlock, error) {
	entry := b.resolveOrCreate(start)
	cur := entry
	curIdx := start

	i := start
	for i < end {
		if cur == nil {
			cur = b.resolveOrCreate(i)
			curIdx = i
		} else if i != curIdx && b.leaders.Test(uint(i)) {
			next := b.resolveOrCreate(i)
			cur.edges = append(cur.edges, tmpEdge{target: next})
			cur = next
			curIdx = i
		}

		switch n := b.nodes[i].(type) {
		case regularStmt:
			cur.stmts = append(cur.stmts, n.stmt)

		case jumpStmt:
			target, err := b.resolveLabel(n.target)
			if err != nil {
				return nil, err
			}
			cur.edges = append(cur.edges, tmpEdge{target: target})
			cur = nil

		case condJumpStmt:
			thenBlk, err := b.resolveLabel(n.thenLbl)
			if err != nil {
				return nil, err
			}
			elseBlk, err := b.resolveLabel(n.elseLbl)
			if err != nil {
				return nil, err
			}
			cur.edges = append(cur.edges,
				tmpEdge{cond: n.cond, target: thenBlk},
				tmpEdge{cond: ast.Not{Exp: n.cond}, target: elseBlk},
			)
			cur = nil

		case loopStmt:
			afterIdx, ok := b.lblmap[n.afterLbl]
			if !ok {
				return nil, &StructuralError{Message: "loop after-label never bound"}
			}
			bodyEntry, err := b.buildRange(i+1, afterIdx)
			if err != nil {
				return nil, err
			}
			loopBlk := &tmpLoopBlock{cond: n.cond, invs: n.invs, entry: bodyEntry}
			after := b.resolveOrCreate(afterIdx)
			loopBlk.edges = []tmpEdge{{target: after}}
			cur.edges = append(cur.edges, tmpEdge{target: loopBlk})
			cur = nil
			i = afterIdx - 1

		case emptyStmt:
			// no content

		default:
			return nil, &StructuralError{Message: "unrecognized extended statement"}
		}

		i++
	}
	return entry, nil
}

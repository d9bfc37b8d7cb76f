// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg lowers a structured ast.Stmt (sequencing, conditionals,
// loops, labels, and unrestricted jumps) into a well-formed Control Flow
// Graph of basic blocks whose shapes are restricted to four variants:
// terminal, linear, conditional, and loop. It also provides the
// consistency checker that verifies a CFG satisfies its structural
// invariants and that identifiers used by the statements it carries are
// well-formed.
//
// The generator is grounded on extras/cfg's statement-level CFG builder
// for Go ASTs, generalized from an arbitrary-degree vertex graph to the
// four fixed block shapes here, and restructured into three explicit
// phases (linearize, build, materialize) rather than extras/cfg's
// single-pass vertex map.
package cfg

import "github.com/rvandoren/silver/ast"

// Block is the closed union of CFG block shapes: *TerminalBlock,
// *NormalBlock, *ConditionalBlock, *LoopBlock. Final blocks, once
// returned by Generate, are never mutated; they may participate in
// cycles (a LoopBlock's body may point back into structures reachable
// from itself), which is why construction uses a two-pass allocate/wire
// discipline (see materialize.go) rather than building each block fully
// formed bottom-up.
//
// Block is implemented by pointer types specifically so that Go's
// built-in == (and use as a map key) is pointer identity, matching the
// requirement that a ConditionalBlock's two successors be distinct
// block values by identity — an ast.Stmt carried in Body may itself be
// structurally incomparable (e.g. a Seqn holding a slice), so comparing
// Block by value is not an option.
type Block interface {
	isBlock()
}

// TerminalBlock has no successor: exactly one such block exists in any
// well-formed outer graph, or any loop body.
type TerminalBlock struct {
	Stmt ast.Stmt
}

func (*TerminalBlock) isBlock() {}

// NormalBlock has exactly one unconditional successor.
type NormalBlock struct {
	Stmt ast.Stmt
	Succ Block
}

func (*NormalBlock) isBlock() {}

// ConditionalBlock has exactly two successors, mutually exclusive under
// Cond/¬Cond: Then and Else must be distinct block values and Cond must
// be Boolean-typed.
type ConditionalBlock struct {
	Stmt       ast.Stmt
	Cond       ast.Exp
	Then, Else Block
}

func (*ConditionalBlock) isBlock() {}

// LoopBlock represents a structured while loop. Body is the entry point
// of an entire nested sub-CFG, entered whenever Cond holds (the body
// sub-CFG must itself be well-formed with exactly one terminal); Succ is
// the post-loop continuation. A LoopBlock carries no Stmt of its own —
// the loop header has no side-effecting statement, only a condition.
type LoopBlock struct {
	Body Block
	Cond ast.Exp
	Invs []ast.Exp
	Succ Block
}

func (*LoopBlock) isBlock() {}

// Successors returns b's immediate successor blocks in a fixed order for
// conditional blocks ([then, else]). It does not descend into a
// LoopBlock's Body (that is a separate sub-CFG entered through the loop,
// not an outer-graph successor) — grounded on extras/cfg's CFG.Succs
// enumeration, generalized to the four block shapes.
func Successors(b Block) []Block {
	switch blk := b.(type) {
	case *TerminalBlock:
		return nil
	case *NormalBlock:
		return []Block{blk.Succ}
	case *ConditionalBlock:
		return []Block{blk.Then, blk.Else}
	case *LoopBlock:
		return []Block{blk.Succ}
	default:
		return nil
	}
}

// Walk performs a BFS over the outer graph rooted at entry, calling visit
// once for each reachable block (by identity) including entry itself. It
// does not descend into LoopBlock bodies; callers that also want to visit
// loop bodies should recurse with Walk(loop.Body, visit) themselves. This
// is the read-only enumeration contract an external visualizer or
// analysis pass relies on — grounded on extras/cfg's CFG.Succs/Preds,
// which serve the same external-enumeration role for that package's
// consumers.
func Walk(entry Block, visit func(Block)) {
	if entry == nil {
		return
	}
	seen := make(map[Block]bool)
	queue := []Block{entry}
	seen[entry] = true
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		visit(b)
		for _, s := range Successors(b) {
			if s != nil && !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}
}

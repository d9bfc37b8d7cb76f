// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite is a generic, tree-shape-agnostic AST rewriting engine.
// It knows nothing about statements, expressions, or any other concrete
// node kind; it operates entirely through the small Node capability below,
// which package ast's Stmt and Exp types (and any other tree the caller
// supplies) implement.
package rewrite

// Node is the capability a tree must expose to be traversed by this
// package: an ordered list of children, and a way to reconstruct a node of
// the same concrete type from a same-length ordered list of replacement
// children. Any heterogeneous node hierarchy can implement it, not just
// a single concrete AST.
//
// WithChildren must not mutate the receiver; it returns a new Node. A node
// with no children (a leaf) returns an empty slice from Children and
// ignores its argument in WithChildren (conventionally returning itself
// unchanged, since there is nothing to rebuild).
type Node interface {
	Children() []Node
	WithChildren(children []Node) Node
}

// Equaler is an optional capability a Node may implement to support the
// change-detection that TopDown/BottomUp/Innermost traversal and the
// then-if-changed combinator rely on: rebuild the parent only if a
// child actually changed. When a Node does not implement Equaler,
// nodesEqual reports it unequal to every other node, so a transformed
// child always counts as a change and its parent is always rebuilt, even
// when structurally identical to its input. The fixpoint checks of
// Repeat and Innermost likewise recognise an unchanged node only through
// Equaler.
type Equaler interface {
	Node
	Equal(other Node) bool
}

func nodesEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ae, ok := a.(Equaler); ok {
		return ae.Equal(b)
	}
	return false
}

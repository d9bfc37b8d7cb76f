package rewrite

// AncestorInfo is the dynamic spine information exposed to an
// AncestorRule during traversal: the parent, the full ancestor chain
// (root-to-parent, root first), the full sibling list (children of
// Parent, current node included), and the previous/next sibling and
// successor suffix relative to the current node's position.
//
// At the root, Parent and Ancestors are empty/nil and Siblings contains
// only the root itself.
type AncestorInfo struct {
	Parent     Node
	Ancestors  []Node
	Siblings   []Node
	Index      int
	Previous   Node // nil if the current node is first among Siblings
	Next       Node // nil if the current node is last among Siblings
	Successors []Node
}

func rootAncestorInfo(n Node) AncestorInfo {
	return AncestorInfo{Siblings: []Node{n}, Index: 0}
}

func childAncestorInfo(parent Node, parentInfo AncestorInfo, siblings []Node, index int) AncestorInfo {
	ancestors := make([]Node, 0, len(parentInfo.Ancestors)+1)
	ancestors = append(ancestors, parentInfo.Ancestors...)
	ancestors = append(ancestors, parent)

	info := AncestorInfo{
		Parent:    parent,
		Ancestors: ancestors,
		Siblings:  siblings,
		Index:     index,
	}
	if index > 0 {
		info.Previous = siblings[index-1]
	}
	if index+1 < len(siblings) {
		info.Next = siblings[index+1]
		info.Successors = siblings[index+1:]
	}
	return info
}

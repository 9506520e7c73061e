package core

import (
	"hedtags/internal/types"
)

// TreeLinker establishes the parent relation over a parsed schema tree
// so any node can be walked upward to its forest root. The tree itself
// is never mutated: the relation lives in a side table keyed by node
// identity.
type TreeLinker struct{}

func NewTreeLinker() TreeLinker {
	return TreeLinker{}
}

// Link records the parent of every descendant reachable from root and
// returns the completed index. Nodes at the top of the tag forest map
// to nil. The one-level schema wrapper of newer documents is
// transparent: the nodes under it become forest roots themselves. A
// node already present in the index is skipped, so shared subtrees are
// linked exactly once.
func (TreeLinker) Link(root *types.SchemaNode) types.ParentIndex {
	index := types.ParentIndex{}
	if root == nil {
		return index
	}
	for kind, children := range root.Children {
		if kind == types.ElementSchemaWrapper {
			for _, wrapper := range children {
				for _, inner := range wrapper.Children {
					linkForest(inner, index)
				}
			}
			continue
		}
		linkForest(children, index)
	}
	return index
}

func linkForest(roots []*types.SchemaNode, index types.ParentIndex) {
	for _, node := range roots {
		if index.Linked(node) {
			continue
		}
		index[node] = nil
		linkChildren(node, index)
	}
}

func linkChildren(parent *types.SchemaNode, index types.ParentIndex) {
	for _, children := range parent.Children {
		for _, child := range children {
			if index.Linked(child) {
				continue
			}
			index[child] = parent
			linkChildren(child, index)
		}
	}
}

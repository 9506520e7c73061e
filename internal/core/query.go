package core

import (
	"hedtags/internal/types"
)

// QueryKind selects one of the two supported query shapes.
type QueryKind int

const (
	// QueryDescendantNodes collects every tag node in the tree,
	// depth-first in document order.
	QueryDescendantNodes QueryKind = iota
	// QueryNamedCollection returns a named top-level collection
	// verbatim when the root exposes it directly.
	QueryNamedCollection
)

// Query describes one structural lookup against a schema tree.
type Query struct {
	Kind       QueryKind
	Collection string
}

// namedCollections are the collections QueryNamedCollection may return
// through direct root access.
var namedCollections = map[string]struct{}{
	types.ElementUnitClass:    {},
	types.ElementUnitModifier: {},
}

// StructuralQuery extracts node collections from a schema tree. Queries
// are constructed internally, never from user input, so an unsupported
// query returns nil rather than an error.
type StructuralQuery struct{}

func NewStructuralQuery() StructuralQuery {
	return StructuralQuery{}
}

// Find evaluates the query against the tree under root.
func (StructuralQuery) Find(root *types.SchemaNode, query Query) []*types.SchemaNode {
	if root == nil {
		return nil
	}
	switch query.Kind {
	case QueryDescendantNodes:
		return descendantNodes(root)
	case QueryNamedCollection:
		if _, ok := namedCollections[query.Collection]; !ok {
			return nil
		}
		return root.ChildNodes(query.Collection)
	default:
		return nil
	}
}

// descendantNodes walks the child-node lists depth-first, unwrapping
// the schema wrapper when the root carries one.
func descendantNodes(root *types.SchemaNode) []*types.SchemaNode {
	start := root
	if wrapped := root.ChildNodes(types.ElementSchemaWrapper); len(wrapped) > 0 {
		start = wrapped[0]
	}
	var out []*types.SchemaNode
	collectNodes(start, &out)
	return out
}

func collectNodes(node *types.SchemaNode, out *[]*types.SchemaNode) {
	for _, child := range node.ChildNodes(types.ElementNode) {
		*out = append(*out, child)
		collectNodes(child, out)
	}
}

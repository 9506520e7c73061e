package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hedtags/internal/types"
)

// MappingBuilder derives the short/long tag mapping from a linked
// schema tree.
type MappingBuilder struct {
	query StructuralQuery
}

func NewMappingBuilder() MappingBuilder {
	return MappingBuilder{query: NewStructuralQuery()}
}

// Build enumerates every tag node and registers its short name against
// its fully qualified long form. The placeholder node is skipped: it
// stands for "any value", not a concrete tag. Duplicate short names
// accumulate under one key and clear the mapping's HasNoDuplicates
// flag.
func (b MappingBuilder) Build(ctx context.Context, root *types.SchemaNode, parents types.ParentIndex) *types.Mapping {
	mapping := types.NewMapping()
	for _, node := range b.query.Find(root, Query{Kind: QueryDescendantNodes}) {
		if node.Name == types.Placeholder {
			continue
		}
		entry := types.NewTagEntry(node.Name, longForm(node, parents))
		mapping.Insert(strings.ToLower(node.Name), entry)
	}
	log.Ctx(ctx).Debug().
		Int("tags", len(mapping.Data)).
		Bool("unique", mapping.HasNoDuplicates).
		Msg("tag mapping built")
	return mapping
}

// longForm joins the node's ancestor names root-to-leaf.
func longForm(node *types.SchemaNode, parents types.ParentIndex) string {
	var names []string
	for current := node; current != nil; current = parents.Parent(current) {
		names = append(names, current.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, types.TagPathSeparator)
}

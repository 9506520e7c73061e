package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hedtags/internal/types"
)

// AttributeCompiler flattens a linked schema tree into the attribute
// and unit lookup table the tag validator consumes.
type AttributeCompiler struct {
	query StructuralQuery
}

func NewAttributeCompiler() AttributeCompiler {
	return AttributeCompiler{query: NewStructuralQuery()}
}

// Compile walks the tag forest plus the unit class and unit modifier
// collections and produces the completed table. Tag keys are
// lowercased long forms; unit and class spellings keep their declared
// case, which unit matching depends on.
func (c AttributeCompiler) Compile(ctx context.Context, root *types.SchemaNode, parents types.ParentIndex) *types.SchemaAttributes {
	attrs := types.NewSchemaAttributes()
	c.compileTags(root, parents, attrs)
	c.compileUnitClasses(root, attrs)
	c.compileUnitModifiers(root, attrs)
	attrs.HasUnitClasses = len(attrs.UnitClasses) > 0
	attrs.HasUnitModifiers = len(attrs.UnitModifiers[types.ModifierKindSymbol])+len(attrs.UnitModifiers[types.ModifierKindName]) > 0
	log.Ctx(ctx).Debug().
		Int("tags", len(attrs.Tags)).
		Int("unit_classes", len(attrs.UnitClasses)).
		Bool("unit_modifiers", attrs.HasUnitModifiers).
		Msg("schema attributes compiled")
	return attrs
}

func (c AttributeCompiler) compileTags(root *types.SchemaNode, parents types.ParentIndex, attrs *types.SchemaAttributes) {
	for _, node := range c.query.Find(root, Query{Kind: QueryDescendantNodes}) {
		longTag := strings.ToLower(longForm(node, parents))
		attrs.Tags[longTag] = struct{}{}
		for name, value := range node.Attributes {
			if attrs.TagAttributes[name] == nil {
				attrs.TagAttributes[name] = map[string]string{}
			}
			attrs.TagAttributes[name][longTag] = value
		}
		if node.Name == types.Placeholder {
			if value, ok := node.Attribute(types.AttrUnitClass); ok {
				attrs.TagUnitClasses[longTag] = splitListValue(value)
			}
		}
	}
}

func (c AttributeCompiler) compileUnitClasses(root *types.SchemaNode, attrs *types.SchemaAttributes) {
	for _, class := range c.query.Find(root, Query{Kind: QueryNamedCollection, Collection: types.ElementUnitClass}) {
		var units []string
		for _, unit := range class.ChildNodes(types.ElementUnit) {
			units = append(units, unit.Name)
			for name, value := range unit.Attributes {
				if attrs.UnitAttributes[name] == nil {
					attrs.UnitAttributes[name] = map[string]string{}
				}
				attrs.UnitAttributes[name][unit.Name] = value
			}
		}
		attrs.UnitClasses[class.Name] = units
		for name, value := range class.Attributes {
			if attrs.UnitClassAttributes[class.Name] == nil {
				attrs.UnitClassAttributes[class.Name] = map[string][]string{}
			}
			attrs.UnitClassAttributes[class.Name][name] = splitListValue(value)
		}
	}
}

func (c AttributeCompiler) compileUnitModifiers(root *types.SchemaNode, attrs *types.SchemaAttributes) {
	for _, modifier := range c.query.Find(root, Query{Kind: QueryNamedCollection, Collection: types.ElementUnitModifier}) {
		kind := ""
		value := ""
		if declared, ok := modifier.Attribute(types.AttrSIUnitSymbolModifier); ok {
			kind = types.ModifierKindSymbol
			value = declared
		} else if declared, ok := modifier.Attribute(types.AttrSIUnitModifier); ok {
			kind = types.ModifierKindName
			value = declared
		} else {
			continue
		}
		if attrs.UnitModifiers[kind] == nil {
			attrs.UnitModifiers[kind] = map[string]string{}
		}
		attrs.UnitModifiers[kind][modifier.Name] = value
	}
}

// splitListValue splits a comma-separated attribute value, trimming
// each element. Multi-valued attributes arrive either as repeated
// attribute elements joined by the parser or as a literal
// comma-separated string.
func splitListValue(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package adapters

import (
	"encoding/xml"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// SchemaXMLAdapter decodes a versioned schema document into the
// normalized element tree. Both document generations are accepted: the
// older format carries inline XML attributes and plural container
// elements, the newer one wraps the tag forest in a schema element,
// renames the containers to *Definitions, and declares attributes as
// name/value child elements. Everything normalizes to one node shape,
// with collections hanging directly off the root.
type SchemaXMLAdapter struct{}

func NewSchemaXMLAdapter() SchemaXMLAdapter {
	return SchemaXMLAdapter{}
}

type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []xmlElement `xml:",any"`
	Text     string       `xml:",chardata"`
}

// containerElements are pure grouping elements. Their children are
// hoisted onto the surrounding node under the mapped kind, so the rest
// of the engine never sees the container level.
var containerElements = map[string]string{
	"unitClasses":                types.ElementUnitClass,
	"unitModifiers":              types.ElementUnitModifier,
	"units":                      types.ElementUnit,
	"unitClassDefinitions":       types.ElementUnitClass,
	"unitModifierDefinitions":    types.ElementUnitModifier,
	"valueClassDefinitions":      "valueClass",
	"schemaAttributeDefinitions": "schemaAttribute",
}

// elementRenames maps newer-generation element names onto the
// normalized kinds.
var elementRenames = map[string]string{
	"unitClassDefinition":       types.ElementUnitClass,
	"unitModifierDefinition":    types.ElementUnitModifier,
	"valueClassDefinition":      "valueClass",
	"schemaAttributeDefinition": "schemaAttribute",
}

// skippedElements carry prose, not structure.
var skippedElements = map[string]struct{}{
	"description": {},
	"prologue":    {},
	"epilogue":    {},
}

func (SchemaXMLAdapter) Parse(data []byte) (*types.ParsedSchema, error) {
	var doc xmlElement
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema xml").
			WithCause(err)
	}
	root := normalizeElement(doc)
	root.Name = doc.XMLName.Local
	version := root.Attributes["version"]
	if version == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema document declares no version")
	}
	return &types.ParsedSchema{
		Version: version,
		Library: root.Attributes["library"],
		Root:    root,
	}, nil
}

// normalizeElement converts one XML element and its subtree into a
// schema node. The element name comes from a name child when present,
// otherwise from the element's own character data.
func normalizeElement(el xmlElement) *types.SchemaNode {
	node := &types.SchemaNode{
		Name:       strings.TrimSpace(el.Text),
		Attributes: map[string]string{},
		Children:   map[string][]*types.SchemaNode{},
	}
	for _, attr := range el.Attrs {
		if attr.Name.Space != "" {
			continue
		}
		node.Attributes[attr.Name.Local] = attr.Value
	}
	for _, child := range el.Children {
		kind := child.XMLName.Local
		if _, ok := skippedElements[kind]; ok {
			continue
		}
		if kind == "name" {
			node.Name = strings.TrimSpace(child.Text)
			continue
		}
		if kind == "attribute" {
			name, value := parseAttributeElement(child)
			if name == "" {
				continue
			}
			mergeAttribute(node.Attributes, name, value)
			continue
		}
		if hoisted, ok := containerElements[kind]; ok {
			appendContainer(node, hoisted, child)
			continue
		}
		if renamed, ok := elementRenames[kind]; ok {
			kind = renamed
		}
		node.Children[kind] = append(node.Children[kind], normalizeElement(child))
	}
	if len(node.Attributes) == 0 {
		node.Attributes = nil
	}
	if len(node.Children) == 0 {
		node.Children = nil
	}
	return node
}

// appendContainer hoists a grouping element's entries onto the parent
// node. Very old documents list units as comma-separated text instead
// of child elements; those split into synthetic entries.
func appendContainer(node *types.SchemaNode, kind string, container xmlElement) {
	if len(container.Children) == 0 {
		for _, name := range strings.Split(container.Text, ",") {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			node.Children[kind] = append(node.Children[kind], &types.SchemaNode{Name: trimmed})
		}
		return
	}
	for _, entry := range container.Children {
		node.Children[kind] = append(node.Children[kind], normalizeElement(entry))
	}
}

// parseAttributeElement reads a newer-generation attribute element:
// a name child plus zero or more value children. Valueless attributes
// are boolean and read as true.
func parseAttributeElement(el xmlElement) (string, string) {
	name := ""
	var values []string
	for _, child := range el.Children {
		switch child.XMLName.Local {
		case "name":
			name = strings.TrimSpace(child.Text)
		case "value":
			if trimmed := strings.TrimSpace(child.Text); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	if len(values) == 0 {
		return name, "true"
	}
	return name, strings.Join(values, ",")
}

// mergeAttribute joins repeated declarations of one attribute into a
// comma-separated value list.
func mergeAttribute(attributes map[string]string, name string, value string) {
	existing, ok := attributes[name]
	if !ok || existing == "" {
		attributes[name] = value
		return
	}
	attributes[name] = existing + "," + value
}

var _ ports.SchemaParserPort = SchemaXMLAdapter{}

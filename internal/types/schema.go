package types

// Element kinds used as keys of SchemaNode.Children. The XML adapter
// normalizes both document generations onto these kinds, so the rest of
// the engine never sees generation-specific element names.
const (
	ElementNode         = "node"
	ElementUnit         = "unit"
	ElementUnitClass    = "unitClass"
	ElementUnitModifier = "unitModifier"

	// ElementSchemaWrapper is the single wrapper element newer documents
	// place between the document root and the tag forest.
	ElementSchemaWrapper = "schema"
)

// SchemaNode is one element of the parsed schema tree: a name, an
// optional attribute dictionary, and child collections keyed by element
// kind. The tree is built once by the XML adapter and never mutated;
// upward traversal goes through a ParentIndex rather than back-pointers
// on the nodes themselves.
type SchemaNode struct {
	Name       string
	Attributes map[string]string
	Children   map[string][]*SchemaNode
}

// ChildNodes returns the child collection of the given kind, or nil.
func (n *SchemaNode) ChildNodes(kind string) []*SchemaNode {
	if n == nil || n.Children == nil {
		return nil
	}
	return n.Children[kind]
}

// Attribute returns the declared value of a node attribute and whether
// it was declared at all.
func (n *SchemaNode) Attribute(name string) (string, bool) {
	if n == nil || n.Attributes == nil {
		return "", false
	}
	value, ok := n.Attributes[name]
	return value, ok
}

// ParentIndex maps every linked node to its parent tag node. Nodes at
// the top of the tag forest map to nil. Keeping the relation in a side
// table keeps the tree itself immutable after parsing.
type ParentIndex map[*SchemaNode]*SchemaNode

// Parent returns the parent tag node, or nil for forest roots and
// unlinked nodes.
func (p ParentIndex) Parent(node *SchemaNode) *SchemaNode {
	if p == nil {
		return nil
	}
	return p[node]
}

// Linked reports whether the node was visited by the tree linker.
func (p ParentIndex) Linked(node *SchemaNode) bool {
	_, ok := p[node]
	return ok
}

// SchemaSpec identifies one schema document: a semantic version plus an
// optional library name. LocalPath, when set, bypasses catalog and
// network acquisition entirely.
type SchemaSpec struct {
	Version   string
	Library   string
	LocalPath string
}

// Key returns the cache key for this spec.
func (s SchemaSpec) Key() string {
	if s.Library == "" {
		return s.Version
	}
	return s.Library + "_" + s.Version
}

func (s SchemaSpec) String() string {
	if s.LocalPath != "" {
		return s.LocalPath
	}
	return s.Key()
}

// ParsedSchema is the decoded form of one raw schema document: the
// version header and the normalized element tree.
type ParsedSchema struct {
	Version string
	Library string
	Root    *SchemaNode
}

// SchemaDocument is a raw acquired document plus the source it came
// from, kept for error reporting and provenance logging.
type SchemaDocument struct {
	Data   []byte
	Source string
}

// Schema wraps everything derived from one loaded schema document. It
// is assembled once at load time and is read-only afterwards, so it may
// be shared across concurrent validation calls without coordination.
type Schema struct {
	Spec       SchemaSpec
	IsHed3     bool
	Root       *SchemaNode
	Parents    ParentIndex
	Attributes *SchemaAttributes
	Mapping    *Mapping

	// Source names where the document was actually read from.
	// UsedFallback is set when acquisition failed and the bundled
	// fallback document was substituted.
	Source       string
	UsedFallback bool
}

// Schemas holds one base schema plus zero or more named library
// schemas. Constructed once per loaded schema set and read-only for the
// remainder of the process.
type Schemas struct {
	Base      *Schema
	Libraries map[string]*Schema
}

// ForPrefix returns the schema a tag prefix routes to: the base schema
// for the empty prefix, otherwise the named library schema.
func (s *Schemas) ForPrefix(prefix string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	if prefix == "" {
		return s.Base, s.Base != nil
	}
	schema, ok := s.Libraries[prefix]
	return schema, ok
}

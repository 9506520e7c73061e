package types

// Tag string syntax markers shared by the whole engine.
const (
	// TagPathSeparator separates hierarchy levels inside a tag string.
	TagPathSeparator = "/"

	// Placeholder is the reserved node name standing for "any value".
	// A tag with its final segment replaced by the placeholder is the
	// takes-value lookup form of that tag family.
	Placeholder = "#"

	// CurrencySymbol is treated as a prefix-style unit by convention in
	// documents that predate the explicit prefix-unit attribute.
	CurrencySymbol = "$"
)

// Tag-level attribute names as declared in schema documents.
const (
	AttrTakesValue       = "takesValue"
	AttrIsNumeric        = "isNumeric"
	AttrExtensionAllowed = "extensionAllowed"
	AttrUnitClass        = "unitClass"

	// AttrDefault and AttrDefaultUnits are two historical spellings of
	// the tag-level default-unit attribute. Both are checked, in this
	// order, by the validator; neither may be dropped.
	AttrDefault      = "default"
	AttrDefaultUnits = "defaultUnits"
)

// Unit-level attribute kinds.
const (
	UnitAttrSymbol = "unitSymbol"
	UnitAttrSI     = "SIUnit"
	UnitAttrPrefix = "unitPrefix"
)

// Unit modifier attribute names as declared in schema documents.
const (
	AttrSIUnitModifier       = "SIUnitModifier"
	AttrSIUnitSymbolModifier = "SIUnitSymbolModifier"
)

// Unit modifier tables. Symbol modifiers prefix symbol-style units,
// name modifiers prefix word-style units.
const (
	ModifierKindSymbol = "symbol"
	ModifierKindName   = "name"
)

// AttributeState is the result of a tri-state attribute lookup. The
// distinction between "declared false" and "not declared" drives the
// legacy-spelling fallback in default-unit resolution, so a plain bool
// cannot represent it.
type AttributeState int

const (
	AttributeNotDeclared AttributeState = iota
	AttributeFalse
	AttributeTrue
)

// Declared reports whether the attribute was present at all.
func (s AttributeState) Declared() bool {
	return s != AttributeNotDeclared
}

// Value reports the declared boolean value; false for undeclared.
func (s AttributeState) Value() bool {
	return s == AttributeTrue
}

// SchemaAttributes is the queryable attribute and unit table for one
// schema version. It is compiled once from the parsed tree and consumed
// read-only by the tag validator.
//
// All tag keys are fully qualified, lowercased long-form tags.
type SchemaAttributes struct {
	// Tags holds every known long-form tag, including placeholder
	// forms.
	Tags map[string]struct{}

	// TagAttributes maps attribute name -> tag -> declared value.
	// Boolean attributes store "true".
	TagAttributes map[string]map[string]string

	// UnitClasses maps unit class name -> declared unit spellings, in
	// document order.
	UnitClasses map[string][]string

	// UnitClassAttributes maps class name -> attribute name -> values.
	UnitClassAttributes map[string]map[string][]string

	// UnitAttributes maps unit attribute kind (unitSymbol, SIUnit,
	// unitPrefix) -> unit -> declared value.
	UnitAttributes map[string]map[string]string

	// UnitModifiers maps modifier kind (symbol, name) -> modifier ->
	// declared value.
	UnitModifiers map[string]map[string]string

	// TagUnitClasses maps a placeholder-form tag to the unit class
	// names registered for it.
	TagUnitClasses map[string][]string

	HasUnitClasses   bool
	HasUnitModifiers bool
}

// NewSchemaAttributes returns an empty table with all maps allocated.
func NewSchemaAttributes() *SchemaAttributes {
	return &SchemaAttributes{
		Tags:                map[string]struct{}{},
		TagAttributes:       map[string]map[string]string{},
		UnitClasses:         map[string][]string{},
		UnitClassAttributes: map[string]map[string][]string{},
		UnitAttributes:      map[string]map[string]string{},
		UnitModifiers:       map[string]map[string]string{},
		TagUnitClasses:      map[string][]string{},
	}
}

// TagExists reports exact membership of a lowercased long-form tag.
func (a *SchemaAttributes) TagExists(tag string) bool {
	_, ok := a.Tags[tag]
	return ok
}

// TagHasAttribute performs the tri-state attribute lookup for a tag.
func (a *SchemaAttributes) TagHasAttribute(tag string, attribute string) AttributeState {
	values, ok := a.TagAttributes[attribute]
	if !ok {
		return AttributeNotDeclared
	}
	value, ok := values[tag]
	if !ok {
		return AttributeNotDeclared
	}
	if value == "false" {
		return AttributeFalse
	}
	return AttributeTrue
}

// TagAttribute returns the declared value of a tag attribute.
func (a *SchemaAttributes) TagAttribute(attribute string, tag string) (string, bool) {
	values, ok := a.TagAttributes[attribute]
	if !ok {
		return "", false
	}
	value, ok := values[tag]
	return value, ok
}

// UnitHasAttribute reports whether a unit carries the given attribute
// kind. Unit attributes have no tri-state semantics; presence is
// meaning.
func (a *SchemaAttributes) UnitHasAttribute(kind string, unit string) bool {
	units, ok := a.UnitAttributes[kind]
	if !ok {
		return false
	}
	_, ok = units[unit]
	return ok
}

// UnitAttributeKindDeclared reports whether any unit in the schema
// declares the given attribute kind at all.
func (a *SchemaAttributes) UnitAttributeKindDeclared(kind string) bool {
	units, ok := a.UnitAttributes[kind]
	return ok && len(units) > 0
}

// ModifiersOfKind returns the modifier spellings of one kind, or nil.
func (a *SchemaAttributes) ModifiersOfKind(kind string) map[string]string {
	return a.UnitModifiers[kind]
}

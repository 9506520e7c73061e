package core

import (
	"context"
	"regexp"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"hedtags/internal/types"
)

// TagValidator answers tag, value, and unit questions against one
// schema's compiled attribute table. All methods are pure reads over
// immutable data, so a validator may be shared across goroutines.
//
// Tag arguments are accepted in any case; lookups lowercase them
// internally. Tables in the attribute table are keyed by lowercased
// long-form tags.
type TagValidator struct {
	attrs  *types.SchemaAttributes
	isHed3 bool
}

func NewTagValidator(attrs *types.SchemaAttributes, isHed3 bool) TagValidator {
	return TagValidator{attrs: attrs, isHed3: isHed3}
}

var (
	numericValuePattern = regexp.MustCompile(`^-?[0-9.]+(?:[eE]-?[0-9]+)?$`)
	hed3ValuePattern    = regexp.MustCompile(`^[-a-zA-Z0-9.$%^+_; ]+$`)
	// The older generation additionally permits a colon, for inline
	// clock-time values.
	hed2ValuePattern = regexp.MustCompile(`^[-a-zA-Z0-9.$%^+_; :]+$`)
)

// TagExistsInSchema reports exact membership of the fully qualified
// tag.
func (v TagValidator) TagExistsInSchema(tag string) bool {
	return v.attrs.TagExists(formatTag(tag))
}

// TagTakesValue reports whether the tag sits in a value position. The
// newer generation inherits value-taking from any ancestor level,
// closest first; the older generation checks only the tag's own
// placeholder form.
func (v TagValidator) TagTakesValue(tag string) bool {
	formatted := formatTag(tag)
	if !v.isHed3 {
		return v.takesValue(placeholderForm(formatted))
	}
	for ancestor := range TagAncestors(formatted) {
		if v.takesValue(placeholderForm(ancestor)) {
			return true
		}
	}
	return false
}

// ValueTakingLevel locates the hierarchy level of tag whose placeholder
// form declares the takes-value attribute, closest level first, and
// returns that placeholder form together with the value portion of the
// tag. The value keeps the caller's original casing.
//
// Callers must establish TagTakesValue(tag) beforehand. Completing the
// walk without a hit means the precondition was violated; that is a
// defect in the caller, not a data-quality issue, and stops execution.
func (v TagValidator) ValueTakingLevel(ctx context.Context, tag string) (string, string) {
	formatted := formatTag(tag)
	if !v.isHed3 {
		placeholder := placeholderForm(formatted)
		assert.Assert(ctx, v.takesValue(placeholder), "tag has no value-taking level: "+tag)
		return placeholder, valueAfterLevel(tag, placeholder)
	}
	for ancestor := range TagAncestors(formatted) {
		placeholder := placeholderForm(ancestor)
		if v.takesValue(placeholder) {
			return placeholder, valueAfterLevel(tag, placeholder)
		}
	}
	assert.Assert(ctx, false, "tag has no value-taking level: "+tag)
	return "", ""
}

// IsUnitClassTag reports whether the tag's placeholder form is
// registered with a unit class. Always false when the schema declares
// no unit classes at all.
func (v TagValidator) IsUnitClassTag(tag string) bool {
	if !v.attrs.HasUnitClasses {
		return false
	}
	_, ok := v.attrs.TagUnitClasses[placeholderForm(formatTag(tag))]
	return ok
}

// UnitClassDefaultUnit returns the default unit for a unit-class tag,
// or the empty string for any other tag. The tag-level default is
// checked under its current spelling first and then under the
// superseded spelling; schema documents exist in both states, so both
// checks stay. With neither declared, the first registered unit class's
// own declared default applies.
func (v TagValidator) UnitClassDefaultUnit(tag string) string {
	if !v.IsUnitClassTag(tag) {
		return ""
	}
	placeholder := placeholderForm(formatTag(tag))
	if v.attrs.TagHasAttribute(placeholder, types.AttrDefault).Declared() {
		value, _ := v.attrs.TagAttribute(types.AttrDefault, placeholder)
		return value
	}
	if value, ok := v.attrs.TagAttribute(types.AttrDefaultUnits, placeholder); ok {
		return value
	}
	classes := v.attrs.TagUnitClasses[placeholder]
	if len(classes) == 0 {
		return ""
	}
	defaults := v.attrs.UnitClassAttributes[classes[0]][types.AttrDefaultUnits]
	if len(defaults) == 0 {
		return ""
	}
	return defaults[0]
}

// TagUnitClasses returns the unit class names registered for the tag's
// placeholder form, in document order. Nil for non-unit-class tags.
func (v TagValidator) TagUnitClasses(tag string) []string {
	if !v.attrs.HasUnitClasses {
		return nil
	}
	return v.attrs.TagUnitClasses[placeholderForm(formatTag(tag))]
}

// TagUnitClassUnits returns every unit spelling legal under the tag's
// unit classes. Nil for non-unit-class tags.
func (v TagValidator) TagUnitClassUnits(tag string) []string {
	var units []string
	for _, class := range v.TagUnitClasses(tag) {
		units = append(units, v.attrs.UnitClasses[class]...)
	}
	return units
}

// IsExtensionAllowedTag reports whether the tag or any proper ancestor
// prefix carries the extension-allowed attribute. Permission is
// inherited downward from any level, checked most specific first.
func (v TagValidator) IsExtensionAllowedTag(tag string) bool {
	formatted := formatTag(tag)
	if v.attrs.TagHasAttribute(formatted, types.AttrExtensionAllowed).Value() {
		return true
	}
	indices := tagSlashIndices(formatted)
	for i := len(indices) - 1; i >= 0; i-- {
		ancestor := formatted[:indices[i]]
		if v.attrs.TagHasAttribute(ancestor, types.AttrExtensionAllowed).Value() {
			return true
		}
	}
	return false
}

// ValidateValue checks a tag value against the value grammar. The
// placeholder itself is always valid. Numeric positions use the
// scientific-notation grammar; all others use the generation's
// character class.
func (v TagValidator) ValidateValue(value string, isNumeric bool) bool {
	if value == types.Placeholder {
		return true
	}
	if isNumeric {
		return numericValuePattern.MatchString(value)
	}
	if v.isHed3 {
		return hed3ValuePattern.MatchString(value)
	}
	return hed2ValuePattern.MatchString(value)
}

func (v TagValidator) takesValue(placeholderTag string) bool {
	return v.attrs.TagHasAttribute(placeholderTag, types.AttrTakesValue).Value()
}

// valueAfterLevel slices the value portion out of the original tag:
// everything at and after the placeholder position of the matched
// level. Lowercasing never changes byte offsets here, so indices from
// the formatted tag apply to the original.
func valueAfterLevel(tag string, placeholderTag string) string {
	start := len(placeholderTag) - len(types.Placeholder)
	return tag[start:]
}

func formatTag(tag string) string {
	return strings.ToLower(tag)
}

package core

import (
	"sort"
	"strings"

	"github.com/gertd/go-pluralize"

	"hedtags/internal/types"
)

var pluralizer = pluralize.NewClient()

// ValidateUnits resolves and strips a unit from a tag value.
//
// Candidates are the union of all units across every declared unit
// class, longest spelling first so longer units win over units that are
// substrings of them. Symbol units match case-sensitively and never
// pluralize; word units match case-insensitively and pluralize when the
// schema declares unit modifiers. SI-eligible units additionally match
// under every declared magnitude prefix, drawn from the symbol or name
// modifier table to match the unit's style. Prefix units (declared as
// such, or the currency symbol by convention) match at the front of the
// value instead of the tail.
//
// A case-insensitive hit on a symbol unit is recorded but not trusted:
// scanning continues, and only if nothing better turns up is the value
// reported as carrying a known unit in the wrong case.
//
// found reports whether the value carries a unit at all: a recognized
// prefix or suffix match, or failing that any trailing token sitting in
// unit position. valid reports whether the matched unit is one of
// permittedUnits; an unrecognized trailing token is never valid.
// stripped is the value with the unit removed, or the unmodified value
// when nothing matched.
func (v TagValidator) ValidateUnits(value string, permittedUnits []string) (bool, bool, string) {
	actualUnit := ""
	noUnit := false
	if idx := strings.LastIndex(value, " "); idx >= 0 {
		actualUnit = value[idx+1:]
	} else {
		noUnit = true
	}

	wrongCase := false
	wrongCaseStripped := ""

	for _, unit := range v.allUnits() {
		isSymbol := v.attrs.UnitHasAttribute(types.UnitAttrSymbol, unit)
		derivatives := v.unitDerivatives(unit, isSymbol)

		if v.isPrefixUnit(unit) {
			for _, derivative := range derivatives {
				if strings.HasPrefix(value, derivative) {
					stripped := strings.TrimSpace(value[len(derivative):])
					return true, unitPermitted(unit, permittedUnits), stripped
				}
			}
			continue
		}

		for _, derivative := range derivatives {
			if actualUnit == derivative {
				return true, unitPermitted(unit, permittedUnits), suffixStripped(value, actualUnit)
			}
			if !strings.EqualFold(actualUnit, derivative) {
				continue
			}
			if isSymbol {
				wrongCase = true
				wrongCaseStripped = suffixStripped(value, actualUnit)
				continue
			}
			return true, unitPermitted(unit, permittedUnits), suffixStripped(value, actualUnit)
		}
	}

	if wrongCase {
		return true, false, wrongCaseStripped
	}
	return !noUnit, false, value
}

// allUnits unions the units of every declared unit class, deduplicated,
// sorted longest first. Class names are visited in sorted order so the
// result is deterministic.
func (v TagValidator) allUnits() []string {
	classNames := make([]string, 0, len(v.attrs.UnitClasses))
	for name := range v.attrs.UnitClasses {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	seen := map[string]struct{}{}
	var units []string
	for _, name := range classNames {
		for _, unit := range v.attrs.UnitClasses[name] {
			if _, ok := seen[unit]; ok {
				continue
			}
			seen[unit] = struct{}{}
			units = append(units, unit)
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		return len(units[i]) > len(units[j])
	})
	return units
}

// unitDerivatives returns every spelling a unit may legally take:
// itself, its plural when word-style and modifiers are declared, and
// each declared SI prefix applied to those when the unit is
// SI-eligible.
func (v TagValidator) unitDerivatives(unit string, isSymbol bool) []string {
	derivatives := []string{unit}
	if !isSymbol && v.attrs.HasUnitModifiers {
		plural := pluralizer.Plural(unit)
		if plural != unit {
			derivatives = append(derivatives, plural)
		}
	}
	if v.attrs.HasUnitModifiers && v.attrs.UnitHasAttribute(types.UnitAttrSI, unit) {
		kind := types.ModifierKindName
		if isSymbol {
			kind = types.ModifierKindSymbol
		}
		base := make([]string, len(derivatives))
		copy(base, derivatives)
		for _, prefix := range modifierSpellings(v.attrs.ModifiersOfKind(kind)) {
			for _, spelling := range base {
				derivatives = append(derivatives, prefix+spelling)
			}
		}
	}
	return derivatives
}

// isPrefixUnit reports whether the unit attaches to the front of the
// value. Units carrying the prefix attribute qualify; in documents
// predating that attribute, the currency symbol qualifies by
// convention.
func (v TagValidator) isPrefixUnit(unit string) bool {
	if v.attrs.UnitAttributeKindDeclared(types.UnitAttrPrefix) {
		return v.attrs.UnitHasAttribute(types.UnitAttrPrefix, unit)
	}
	return unit == types.CurrencySymbol
}

func modifierSpellings(modifiers map[string]string) []string {
	spellings := make([]string, 0, len(modifiers))
	for spelling := range modifiers {
		spellings = append(spellings, spelling)
	}
	sort.Strings(spellings)
	return spellings
}

func unitPermitted(unit string, permitted []string) bool {
	for _, candidate := range permitted {
		if candidate == unit {
			return true
		}
	}
	return false
}

func suffixStripped(value string, actualUnit string) string {
	return strings.TrimSpace(value[:len(value)-len(actualUnit)])
}

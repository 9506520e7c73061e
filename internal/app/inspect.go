package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/core"
	"hedtags/internal/types"
)

// InspectSchema loads the first requested schema and summarizes what was
// built from it: generation, tag counts, unit classes, modifiers.
func (s *Service) InspectSchema(ctx context.Context, req InspectRequest) (InspectResult, error) {
	schemas, err := s.LoadSchemas(ctx, req.Schemas)
	if err != nil {
		return InspectResult{}, err
	}
	spec, err := core.ParseSpec(req.Schemas.Specs[0])
	if err != nil {
		return InspectResult{}, err
	}
	schema, ok := schemas.ForPrefix(spec.Library)
	if !ok || schema == nil {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("schema " + spec.String() + " missing after load")
	}

	generation := 2
	if schema.IsHed3 {
		generation = 3
	}
	result := InspectResult{
		Version:         schema.Spec.Version,
		Library:         schema.Spec.Library,
		Generation:      generation,
		Source:          schema.Source,
		UsedFallback:    schema.UsedFallback,
		TagCount:        len(schema.Mapping.Data),
		ShortTagsUnique: schema.Mapping.HasNoDuplicates,
		UnitModifiers:   countUnitModifiers(schema.Attributes),
	}
	for _, name := range sortedKeys(schema.Attributes.UnitClasses) {
		units := append([]string(nil), schema.Attributes.UnitClasses[name]...)
		sort.Strings(units)
		detail := InspectUnitClass{Name: name, Units: units}
		if defaults := schema.Attributes.UnitClassAttributes[name][types.AttrDefaultUnits]; len(defaults) > 0 {
			detail.DefaultUnits = defaults[0]
		}
		result.UnitClasses = append(result.UnitClasses, detail)
	}
	return result, nil
}

func countUnitModifiers(attrs *types.SchemaAttributes) int {
	total := 0
	for _, modifiers := range attrs.UnitModifiers {
		total += len(modifiers)
	}
	return total
}

func sortedKeys[K comparable, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

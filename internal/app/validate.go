package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/core"
	"hedtags/internal/types"
)

// ValidateTags checks every tag against the loaded schema set and returns
// the aggregated issues. Bad tags are outcomes, not errors: the error
// return covers schema loading and malformed requests only.
func (s *Service) ValidateTags(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if len(req.Tags) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one tag is required")
	}
	schemas, err := s.LoadSchemas(ctx, req.Schemas)
	if err != nil {
		return ValidateResult{}, err
	}

	var issues []types.Issue
	var hints []string
	checked := 0
	for _, raw := range req.Tags {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		checked++
		tagIssues, tagHints := validateTag(ctx, schemas, tag)
		issues = append(issues, tagIssues...)
		hints = append(hints, tagHints...)
	}
	return ValidateResult{
		Issues:  issues,
		Hints:   hints,
		Valid:   !types.HasErrors(issues),
		Checked: checked,
	}, nil
}

func validateTag(ctx context.Context, schemas *types.Schemas, tag string) ([]types.Issue, []string) {
	prefix, remainder := splitLibraryPrefix(tag)
	schema, ok := schemas.ForPrefix(prefix)
	if !ok || schema == nil {
		if prefix != "" {
			issue := types.ErrorIssue(types.IssueUnknownLibrary, tag,
				fmt.Sprintf("no library schema loaded under prefix %q", prefix))
			return []types.Issue{issue}, nil
		}
		issue := types.ErrorIssue(types.IssueInvalidTag, tag,
			"no base schema loaded for unprefixed tags")
		return []types.Issue{issue}, nil
	}

	validator := core.NewTagValidator(schema.Attributes, schema.IsHed3)
	if validator.TagExistsInSchema(remainder) {
		return nil, nil
	}
	if validator.TagTakesValue(remainder) {
		return checkValueTag(ctx, schema, validator, tag, remainder), nil
	}
	if validator.IsExtensionAllowedTag(remainder) {
		issue := types.WarningIssue(types.IssueExtendedTag, tag,
			"tag extends the schema vocabulary")
		return []types.Issue{issue}, nil
	}
	issue := types.ErrorIssue(types.IssueInvalidTag, tag,
		fmt.Sprintf("tag %q is not in the schema", tag))
	return []types.Issue{issue}, tagSuggestions(schema.Mapping, remainder)
}

// checkValueTag validates the value portion of a value-taking tag: units
// first when the level is unit-classed, then the value grammar on the
// unit-stripped remainder.
func checkValueTag(ctx context.Context, schema *types.Schema, validator core.TagValidator, display, tag string) []types.Issue {
	level, value := validator.ValueTakingLevel(ctx, tag)
	numeric := schema.Attributes.TagHasAttribute(level, types.AttrIsNumeric).Value()

	var issues []types.Issue
	checkValue := value
	if validator.IsUnitClassTag(level) {
		permitted := validator.TagUnitClassUnits(level)
		found, valid, stripped := validator.ValidateUnits(value, permitted)
		switch {
		case !found:
			if def := validator.UnitClassDefaultUnit(level); def != "" {
				issues = append(issues, types.WarningIssue(types.IssueMissingUnit, display,
					fmt.Sprintf("no unit on value %q, assuming default unit %q", value, def)))
			}
		case !valid:
			issues = append(issues, types.ErrorIssue(types.IssueInvalidUnit, display,
				fmt.Sprintf("unit not permitted here, expected one of: %s", strings.Join(permitted, ", "))))
		}
		checkValue = stripped
	}
	if !validator.ValidateValue(checkValue, numeric) {
		issues = append(issues, types.ErrorIssue(types.IssueInvalidValue, display,
			fmt.Sprintf("value %q is not legal in this position", checkValue)))
	}
	return issues
}

// splitLibraryPrefix splits "lib:tag/path" into its library nickname and
// the bare tag. The candidate prefix must precede any path separator;
// colons elsewhere belong to the value (legacy clock times).
func splitLibraryPrefix(tag string) (string, string) {
	idx := strings.Index(tag, ":")
	if idx <= 0 {
		return "", tag
	}
	prefix := tag[:idx]
	if strings.Contains(prefix, types.TagPathSeparator) {
		return "", tag
	}
	return prefix, tag[idx+1:]
}

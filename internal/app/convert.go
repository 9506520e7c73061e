package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hedtags/internal/core"
	"hedtags/internal/types"
)

// ConvertTags rewrites every tag between short and long form. Tags that
// cannot be converted come back unchanged with issues attached, keeping
// input and output positions aligned.
func (s *Service) ConvertTags(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	direction, err := parseDirection(req.Direction)
	if err != nil {
		return ConvertResult{}, err
	}
	if len(req.Tags) == 0 {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one tag is required")
	}
	schemas, err := s.LoadSchemas(ctx, req.Schemas)
	if err != nil {
		return ConvertResult{}, err
	}

	result := ConvertResult{Tags: make([]string, 0, len(req.Tags))}
	for _, raw := range req.Tags {
		tag := strings.TrimSpace(raw)
		prefix, remainder := splitLibraryPrefix(tag)
		schema, ok := schemas.ForPrefix(prefix)
		if !ok || schema == nil {
			result.Tags = append(result.Tags, tag)
			if prefix != "" {
				result.Issues = append(result.Issues, types.ErrorIssue(types.IssueUnknownLibrary, tag,
					"no library schema loaded under prefix \""+prefix+"\""))
			} else {
				result.Issues = append(result.Issues, types.ErrorIssue(types.IssueInvalidTag, tag,
					"no base schema loaded for unprefixed tags"))
			}
			continue
		}
		if !schema.Mapping.HasNoDuplicates {
			log.Ctx(ctx).Debug().
				Str("schema", schema.Spec.String()).
				Msg("mapping carries duplicate short names, conversions may report ambiguity")
		}
		converter := core.NewTagConverter(schema.Mapping, core.NewTagValidator(schema.Attributes, schema.IsHed3))
		converted, issues := converter.Convert(remainder, direction)
		if prefix != "" {
			converted = prefix + ":" + converted
		}
		result.Tags = append(result.Tags, converted)
		result.Issues = append(result.Issues, issues...)
	}
	return result, nil
}

func parseDirection(value string) (types.ConvertDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(types.ConvertToLong), "":
		return types.ConvertToLong, nil
	case string(types.ConvertToShort):
		return types.ConvertToShort, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("conversion direction must be \"long\" or \"short\"")
	}
}

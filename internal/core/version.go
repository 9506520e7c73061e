package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/types"
)

// hed3Boundary is the first base-schema version of the newer schema
// generation. Library schemas belong to the newer generation regardless
// of their own version.
var hed3Boundary = semver.MustParse("8.0.0")

// ParseSpec parses a schema spec string of the form "8.2.0" or
// "score_1.1.0" (library name, underscore, semantic version).
func ParseSpec(value string) (types.SchemaSpec, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return types.SchemaSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema spec must not be empty")
	}
	library := ""
	version := trimmed
	if idx := strings.LastIndex(trimmed, "_"); idx >= 0 {
		library = trimmed[:idx]
		version = trimmed[idx+1:]
	}
	if _, err := semver.NewVersion(version); err != nil {
		return types.SchemaSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid schema version: %s", version)).
			WithCause(err)
	}
	return types.SchemaSpec{Version: version, Library: library}, nil
}

// IsHed3 reports whether the spec selects the newer schema generation:
// any library schema, or a base schema at or above the boundary
// version.
func IsHed3(spec types.SchemaSpec) (bool, error) {
	if spec.Library != "" {
		return true, nil
	}
	parsed, err := semver.NewVersion(spec.Version)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid schema version: %s", spec.Version)).
			WithCause(err)
	}
	return !parsed.LessThan(hed3Boundary), nil
}

package app

import "hedtags/internal/types"

// LoadRequest names the schema set a command operates on. Specs are raw
// version strings ("8.2.0") or library specs ("testlib_1.1.0").
type LoadRequest struct {
	Specs            []string
	SchemaPath       string
	CatalogPath      string
	NoFallback       bool
	BaseURL          string
	LibraryURL       string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type ValidateRequest struct {
	Schemas LoadRequest
	Tags    []string
}

type ValidateResult struct {
	Issues  []types.Issue
	Hints   []string
	Valid   bool
	Checked int
}

type ConvertRequest struct {
	Schemas   LoadRequest
	Tags      []string
	Direction string
}

type ConvertResult struct {
	Tags   []string
	Issues []types.Issue
}

type InspectRequest struct {
	Schemas LoadRequest
}

type InspectUnitClass struct {
	Name         string   `yaml:"name"`
	DefaultUnits string   `yaml:"default_units,omitempty"`
	Units        []string `yaml:"units"`
}

type InspectResult struct {
	Version         string             `yaml:"version"`
	Library         string             `yaml:"library,omitempty"`
	Generation      int                `yaml:"generation"`
	Source          string             `yaml:"source"`
	UsedFallback    bool               `yaml:"used_fallback,omitempty"`
	TagCount        int                `yaml:"tags"`
	ShortTagsUnique bool               `yaml:"short_tags_unique"`
	UnitClasses     []InspectUnitClass `yaml:"unit_classes,omitempty"`
	UnitModifiers   int                `yaml:"unit_modifiers"`
}

package adapters

import (
	"context"

	_ "embed"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

//go:embed bundled/HED8.2.0.xml
var bundledSchema []byte

// BundledSchemaVersion is the base-schema version compiled into the
// binary as the acquisition fallback.
const BundledSchemaVersion = "8.2.0"

// FallbackSchemaAdapter serves the schema document compiled into the
// binary. The application substitutes it when every other source
// failed, unless the caller disabled fallback for the request.
type FallbackSchemaAdapter struct{}

func NewFallbackSchemaAdapter() FallbackSchemaAdapter {
	return FallbackSchemaAdapter{}
}

func (FallbackSchemaAdapter) Fetch(_ context.Context, _ types.SchemaSpec) (types.SchemaDocument, error) {
	return types.SchemaDocument{
		Data:   bundledSchema,
		Source: "bundled:HED" + BundledSchemaVersion,
	}, nil
}

var _ ports.SchemaSourcePort = FallbackSchemaAdapter{}

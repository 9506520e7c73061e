package ports

import (
	"context"

	"hedtags/internal/types"
)

// SchemaSourcePort acquires the raw schema document for a spec.
//
// Sources are layered by the application: an explicit local path wins,
// then a catalog entry, then the remote URL template, with the bundled
// fallback document substituted last unless the caller disabled it.
type SchemaSourcePort interface {
	// Fetch returns the document bytes together with the name of the
	// source they were read from. A failure names the attempted source
	// and carries the underlying cause.
	Fetch(ctx context.Context, spec types.SchemaSpec) (types.SchemaDocument, error)
}

// SchemaParserPort decodes a raw schema document into the normalized
// element tree. Both document generations decode to the same shape.
type SchemaParserPort interface {
	Parse(data []byte) (*types.ParsedSchema, error)
}

// CatalogPort looks up pinned schema locations.
type CatalogPort interface {
	// Lookup returns the catalog entry for the spec and whether one
	// exists. An error means the catalog itself could not be read.
	Lookup(spec types.SchemaSpec) (types.CatalogEntry, bool, error)
}

package adapters

import (
	"context"

	"github.com/rs/zerolog/log"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// SchemaSourceResolver layers the acquisition sources for one schema
// document. An explicit local path on the spec wins, then a catalog
// entry (its pinned path or URL), then the remote URL template.
// Fallback substitution is the application's decision and happens
// above this resolver.
type SchemaSourceResolver struct {
	Files   SchemaFileAdapter
	HTTP    SchemaHTTPAdapter
	Catalog ports.CatalogPort
}

func NewSchemaSourceResolver(files SchemaFileAdapter, http SchemaHTTPAdapter, catalog ports.CatalogPort) SchemaSourceResolver {
	return SchemaSourceResolver{
		Files:   files,
		HTTP:    http,
		Catalog: catalog,
	}
}

func (r SchemaSourceResolver) Fetch(ctx context.Context, spec types.SchemaSpec) (types.SchemaDocument, error) {
	if spec.LocalPath != "" {
		log.Ctx(ctx).Debug().Str("path", spec.LocalPath).Msg("loading schema from explicit path")
		return r.Files.Fetch(ctx, spec)
	}
	if r.Catalog != nil {
		entry, ok, err := r.Catalog.Lookup(spec)
		if err != nil {
			return types.SchemaDocument{}, err
		}
		if ok {
			if entry.Path != "" {
				log.Ctx(ctx).Debug().Str("path", entry.Path).Msg("loading schema from catalog path")
				return readSchemaFile(entry.Path)
			}
			if entry.URL != "" {
				log.Ctx(ctx).Debug().Str("url", entry.URL).Msg("loading schema from catalog url")
				return r.HTTP.FetchURL(ctx, entry.URL)
			}
		}
	}
	log.Ctx(ctx).Debug().Str("spec", spec.String()).Msg("loading schema from remote template")
	return r.HTTP.Fetch(ctx, spec)
}

var _ ports.SchemaSourcePort = SchemaSourceResolver{}

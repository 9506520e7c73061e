package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hedtags/internal/core"
	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// LoadSchemas acquires, parses, and assembles every schema named by the
// request. Base schema acquisition failures are masked by the bundled
// fallback unless the request disables it; library failures always surface.
func (s *Service) LoadSchemas(ctx context.Context, req LoadRequest) (*types.Schemas, error) {
	if len(req.Specs) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one schema spec is required")
	}
	source := s.schemaSource(req)
	schemas := &types.Schemas{Libraries: map[string]*types.Schema{}}
	for _, raw := range req.Specs {
		spec, err := core.ParseSpec(raw)
		if err != nil {
			return nil, err
		}
		if spec.Library == "" && req.SchemaPath != "" {
			spec.LocalPath = req.SchemaPath
		}
		schema, err := s.loadOne(ctx, source, spec, req.NoFallback)
		if err != nil {
			return nil, err
		}
		if spec.Library == "" {
			if schemas.Base != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("more than one base schema spec given: " + spec.String())
			}
			schemas.Base = schema
			continue
		}
		if _, ok := schemas.Libraries[spec.Library]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("library schema given twice: " + spec.Library)
		}
		schemas.Libraries[spec.Library] = schema
	}
	return schemas, nil
}

func (s *Service) loadOne(ctx context.Context, source ports.SchemaSourcePort, spec types.SchemaSpec, noFallback bool) (*types.Schema, error) {
	if cached, ok := s.cachedSchema(spec.Key()); ok {
		return cached, nil
	}
	usedFallback := false
	doc, err := source.Fetch(ctx, spec)
	if err != nil {
		// The fallback document is the bundled base schema; substituting it
		// for a library vocabulary would validate against the wrong tags.
		if noFallback || s.Fallback == nil || spec.Library != "" {
			return nil, err
		}
		log.Ctx(ctx).Warn().
			Str("schema", spec.String()).
			Err(err).
			Msg("schema acquisition failed, substituting bundled fallback")
		doc, err = s.Fallback.Fetch(ctx, spec)
		if err != nil {
			return nil, err
		}
		usedFallback = true
	}
	schema, err := s.buildSchema(ctx, spec, doc, usedFallback)
	if err != nil {
		return nil, err
	}
	s.storeSchema(spec.Key(), schema)
	return schema, nil
}

// buildSchema runs the construction pipeline on one parsed document: link
// parents, build the short-to-long mapping, compile the attribute table.
func (s *Service) buildSchema(ctx context.Context, spec types.SchemaSpec, doc types.SchemaDocument, usedFallback bool) (*types.Schema, error) {
	parsed, err := s.Parser.Parse(doc.Data)
	if err != nil {
		return nil, err
	}
	if !usedFallback && parsed.Version != "" && parsed.Version != spec.Version {
		log.Ctx(ctx).Warn().
			Str("requested", spec.Version).
			Str("document", parsed.Version).
			Msg("schema document version differs from requested spec")
	}

	// Generation follows the document actually in hand, so a fallback
	// substitution validates with the fallback's semantics.
	genSpec := types.SchemaSpec{Version: parsed.Version, Library: parsed.Library}
	if genSpec.Version == "" {
		genSpec.Version = spec.Version
	}
	if genSpec.Library == "" {
		genSpec.Library = spec.Library
	}
	isHed3, err := core.IsHed3(genSpec)
	if err != nil {
		return nil, err
	}

	linker := core.NewTreeLinker()
	parents := linker.Link(parsed.Root)
	mapping := core.NewMappingBuilder().Build(ctx, parsed.Root, parents)
	attrs := core.NewAttributeCompiler().Compile(ctx, parsed.Root, parents)

	log.Ctx(ctx).Debug().
		Str("schema", spec.String()).
		Str("source", doc.Source).
		Bool("hed3", isHed3).
		Bool("fallback", usedFallback).
		Msg("schema constructed")

	return &types.Schema{
		Spec:         spec,
		IsHed3:       isHed3,
		Root:         parsed.Root,
		Parents:      parents,
		Attributes:   attrs,
		Mapping:      mapping,
		Source:       doc.Source,
		UsedFallback: usedFallback,
	}, nil
}

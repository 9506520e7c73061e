package app

import (
	"sync"

	"hedtags/internal/adapters"
	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// Service wires the schema ports together and caches constructed schemas so
// repeated operations against the same spec reuse a single build.
type Service struct {
	Source   ports.SchemaSourcePort
	Parser   ports.SchemaParserPort
	Fallback ports.SchemaSourcePort

	mu     sync.Mutex
	loaded map[string]*types.Schema
}

func NewService() *Service {
	return &Service{
		Source:   adapters.NewSchemaSourceResolver(adapters.SchemaFileAdapter{}, adapters.NewSchemaHTTPAdapter("", "", 0, 0, 0), nil),
		Parser:   adapters.SchemaXMLAdapter{},
		Fallback: adapters.FallbackSchemaAdapter{},
		loaded:   map[string]*types.Schema{},
	}
}

// schemaSource returns the configured source port unless the request carries
// acquisition settings of its own, in which case a resolver is built for the
// request the way the catalog and HTTP flags describe.
func (s *Service) schemaSource(req LoadRequest) ports.SchemaSourcePort {
	if req.CatalogPath == "" && req.BaseURL == "" && req.LibraryURL == "" &&
		req.HTTPTimeoutSec == 0 && req.HTTPRetries == 0 && req.HTTPRetryDelayMs == 0 {
		return s.Source
	}
	var catalog ports.CatalogPort
	if req.CatalogPath != "" {
		catalog = adapters.NewCatalogAdapter(req.CatalogPath)
	}
	httpAdapter := adapters.NewSchemaHTTPAdapter(
		req.BaseURL,
		req.LibraryURL,
		req.HTTPTimeoutSec,
		req.HTTPRetries,
		req.HTTPRetryDelayMs,
	)
	return adapters.NewSchemaSourceResolver(adapters.SchemaFileAdapter{}, httpAdapter, catalog)
}

func (s *Service) cachedSchema(key string) (*types.Schema, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schema, ok := s.loaded[key]
	return schema, ok
}

func (s *Service) storeSchema(key string, schema *types.Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded == nil {
		s.loaded = map[string]*types.Schema{}
	}
	s.loaded[key] = schema
}

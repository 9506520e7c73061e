package types

// CatalogFile is the parsed form of a schema catalog. A catalog pins
// schema versions to local files or download URLs so that resolution
// does not depend on the default remote layout.
type CatalogFile struct {
	// CatalogVersion is the version of the catalog file format.
	CatalogVersion string `yaml:"catalog_version"`
	// Schemas lists the pinned schema sources.
	Schemas []CatalogEntry `yaml:"schemas"`
}

// CatalogEntry pins a single schema version to a source.
type CatalogEntry struct {
	// Version is the schema version the entry applies to.
	Version string `yaml:"version"`
	// Library is the library name, empty for the base schema.
	Library string `yaml:"library,omitempty"`
	// Path is a local file path relative to the catalog file.
	Path string `yaml:"path,omitempty"`
	// URL is a remote source used when Path is empty.
	URL string `yaml:"url,omitempty"`
}

// Matches reports whether the entry pins the given spec.
func (e CatalogEntry) Matches(spec SchemaSpec) bool {
	return e.Version == spec.Version && e.Library == spec.Library
}

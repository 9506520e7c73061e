package adapters

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// CatalogAdapter resolves schema specs through a YAML catalog of
// pinned locations. The catalog is loaded once and reused; relative
// paths in entries resolve against the catalog file's directory.
type CatalogAdapter struct {
	Path string

	once    sync.Once
	file    types.CatalogFile
	loadErr error
}

func NewCatalogAdapter(path string) *CatalogAdapter {
	return &CatalogAdapter{Path: path}
}

func (a *CatalogAdapter) Lookup(spec types.SchemaSpec) (types.CatalogEntry, bool, error) {
	if a.Path == "" {
		return types.CatalogEntry{}, false, nil
	}
	a.once.Do(a.load)
	if a.loadErr != nil {
		return types.CatalogEntry{}, false, a.loadErr
	}
	for _, entry := range a.file.Schemas {
		if entry.Matches(spec) {
			return a.resolvePath(entry), true, nil
		}
	}
	return types.CatalogEntry{}, false, nil
}

func (a *CatalogAdapter) load() {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		a.loadErr = errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
		return
	}
	var file types.CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		a.loadErr = errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog yaml").
			WithCause(err)
		return
	}
	a.file = file
}

func (a *CatalogAdapter) resolvePath(entry types.CatalogEntry) types.CatalogEntry {
	if entry.Path == "" || filepath.IsAbs(entry.Path) {
		return entry
	}
	entry.Path = filepath.Join(filepath.Dir(a.Path), entry.Path)
	return entry
}

var _ ports.CatalogPort = (*CatalogAdapter)(nil)

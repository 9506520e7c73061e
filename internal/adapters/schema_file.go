package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// SchemaFileAdapter reads schema documents from the local filesystem.
type SchemaFileAdapter struct{}

func NewSchemaFileAdapter() SchemaFileAdapter {
	return SchemaFileAdapter{}
}

// Fetch reads the document at the spec's explicit local path.
func (SchemaFileAdapter) Fetch(_ context.Context, spec types.SchemaSpec) (types.SchemaDocument, error) {
	return readSchemaFile(spec.LocalPath)
}

func readSchemaFile(path string) (types.SchemaDocument, error) {
	if strings.TrimSpace(path) == "" {
		return types.SchemaDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SchemaDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to read schema document: %s", path)).
			WithCause(err)
	}
	return types.SchemaDocument{Data: data, Source: path}, nil
}

var _ ports.SchemaSourcePort = SchemaFileAdapter{}

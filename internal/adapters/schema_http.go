package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hedtags/internal/ports"
	"hedtags/internal/types"
)

// SchemaHTTPAdapter downloads schema documents over HTTP. The default
// templates follow the upstream repository layout for base and library
// schemas; deployments with a mirror override them.
type SchemaHTTPAdapter struct {
	BaseURLTemplate    string
	LibraryURLTemplate string
	Timeout            time.Duration
	Retries            int
	RetryDelay         time.Duration
}

const defaultBaseURLTemplate = "https://raw.githubusercontent.com/hed-standard/hed-schemas/main/standard_schema/hedxml/HED%s.xml"
const defaultLibraryURLTemplate = "https://raw.githubusercontent.com/hed-standard/hed-schemas/main/library_schemas/%s/hedxml/HED_%s_%s.xml"

const defaultSchemaFetchTimeout = 30 * time.Second
const defaultSchemaFetchRetries = 3
const defaultSchemaRetryDelay = 200 * time.Millisecond
const maxSchemaRetryDelay = 2 * time.Second

func NewSchemaHTTPAdapter(baseTemplate string, libraryTemplate string, timeoutSec int, retries int, retryDelayMs int) SchemaHTTPAdapter {
	if strings.TrimSpace(baseTemplate) == "" {
		baseTemplate = defaultBaseURLTemplate
	}
	if strings.TrimSpace(libraryTemplate) == "" {
		libraryTemplate = defaultLibraryURLTemplate
	}
	return SchemaHTTPAdapter{
		BaseURLTemplate:    baseTemplate,
		LibraryURLTemplate: libraryTemplate,
		Timeout:            normalizeFetchTimeout(timeoutSec),
		Retries:            normalizeFetchRetries(retries),
		RetryDelay:         normalizeFetchRetryDelay(retryDelayMs),
	}
}

// Fetch downloads the document for the spec from the templated URL.
func (a SchemaHTTPAdapter) Fetch(ctx context.Context, spec types.SchemaSpec) (types.SchemaDocument, error) {
	return a.FetchURL(ctx, a.documentURL(spec))
}

// FetchURL downloads a schema document from an explicit URL, retrying
// transient failures with capped exponential backoff.
func (a SchemaHTTPAdapter) FetchURL(ctx context.Context, url string) (types.SchemaDocument, error) {
	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return types.SchemaDocument{}, ctx.Err()
		}
		data, retry, err := a.fetchOnce(ctx, url)
		if err == nil {
			return types.SchemaDocument{Data: data, Source: url}, nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return types.SchemaDocument{}, err
		}
		time.Sleep(a.retryDelay(attempt))
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("schema download failed")
	}
	return types.SchemaDocument{}, lastErr
}

func (a SchemaHTTPAdapter) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create schema request").
			WithCause(err)
	}
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to download schema document: %s", url)).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to read schema document: %s", url)).
				WithCause(err)
		}
		return data, false, nil
	}
	code := errbuilder.CodeInternal
	if resp.StatusCode == http.StatusNotFound {
		code = errbuilder.CodeNotFound
	}
	retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
	return nil, retry, errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("schema download failed: status=%d url=%s", resp.StatusCode, url))
}

func (a SchemaHTTPAdapter) documentURL(spec types.SchemaSpec) string {
	if spec.Library != "" {
		return fmt.Sprintf(a.LibraryURLTemplate, spec.Library, spec.Library, spec.Version)
	}
	return fmt.Sprintf(a.BaseURLTemplate, spec.Version)
}

func (a SchemaHTTPAdapter) retryDelay(attempt int) time.Duration {
	delay := a.RetryDelay * time.Duration(1<<attempt)
	if delay > maxSchemaRetryDelay {
		delay = maxSchemaRetryDelay
	}
	return delay
}

func normalizeFetchTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultSchemaFetchTimeout
	}
	return timeout
}

func normalizeFetchRetries(value int) int {
	if value <= 0 {
		return defaultSchemaFetchRetries
	}
	return value
}

func normalizeFetchRetryDelay(value int) time.Duration {
	delay := time.Duration(value) * time.Millisecond
	if delay <= 0 {
		return defaultSchemaRetryDelay
	}
	return delay
}

var _ ports.SchemaSourcePort = SchemaHTTPAdapter{}

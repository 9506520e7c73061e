package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/types"
)

func TestSchemaHTTPFetchBase(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte(resolverSchemaXML))
	}))
	defer server.Close()

	adapter := NewSchemaHTTPAdapter(server.URL+"/hedxml/HED%s.xml", "", 1, 1, 1)
	doc, err := adapter.Fetch(t.Context(), types.SchemaSpec{Version: "8.2.0"})
	require.NoError(t, err)

	assert.Equal(t, "/hedxml/HED8.2.0.xml", requested)
	assert.Equal(t, []byte(resolverSchemaXML), doc.Data)
	assert.Equal(t, server.URL+"/hedxml/HED8.2.0.xml", doc.Source)
}

func TestSchemaHTTPFetchLibrary(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte(resolverSchemaXML))
	}))
	defer server.Close()

	adapter := NewSchemaHTTPAdapter("", server.URL+"/%s/hedxml/HED_%s_%s.xml", 1, 1, 1)
	_, err := adapter.Fetch(t.Context(), types.SchemaSpec{Version: "1.1.0", Library: "testlib"})
	require.NoError(t, err)

	assert.Equal(t, "/testlib/hedxml/HED_testlib_1.1.0.xml", requested)
}

func TestSchemaHTTPNotFoundNoRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewSchemaHTTPAdapter(server.URL+"/HED%s.xml", "", 1, 3, 1)
	_, err := adapter.Fetch(t.Context(), types.SchemaSpec{Version: "9.9.9"})
	require.Error(t, err)

	// Missing documents do not get retried
	assert.Equal(t, 1, attempts)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestSchemaHTTPRetriesServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(resolverSchemaXML))
	}))
	defer server.Close()

	adapter := NewSchemaHTTPAdapter(server.URL+"/HED%s.xml", "", 1, 3, 1)
	doc, err := adapter.Fetch(t.Context(), types.SchemaSpec{Version: "8.2.0"})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, []byte(resolverSchemaXML), doc.Data)
}

func TestSchemaHTTPRetriesExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := NewSchemaHTTPAdapter(server.URL+"/HED%s.xml", "", 1, 2, 1)
	_, err := adapter.Fetch(t.Context(), types.SchemaSpec{Version: "8.2.0"})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestSchemaHTTPContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapter := NewSchemaHTTPAdapter(server.URL+"/HED%s.xml", "", 1, 3, 1)
	_, err := adapter.Fetch(ctx, types.SchemaSpec{Version: "8.2.0"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSchemaHTTPDefaults(t *testing.T) {
	adapter := NewSchemaHTTPAdapter("", "", 0, 0, 0)

	assert.Equal(t, defaultBaseURLTemplate, adapter.BaseURLTemplate)
	assert.Equal(t, defaultLibraryURLTemplate, adapter.LibraryURLTemplate)
	assert.Equal(t, defaultSchemaFetchTimeout, adapter.Timeout)
	assert.Equal(t, defaultSchemaFetchRetries, adapter.Retries)
	assert.Equal(t, defaultSchemaRetryDelay, adapter.RetryDelay)
}

func TestSchemaHTTPRetryDelayCapped(t *testing.T) {
	adapter := NewSchemaHTTPAdapter("", "", 1, 5, 800)

	assert.Equal(t, 800*time.Millisecond, adapter.retryDelay(0))
	assert.Equal(t, 1600*time.Millisecond, adapter.retryDelay(1))
	// Backoff never exceeds the cap
	assert.Equal(t, maxSchemaRetryDelay, adapter.retryDelay(2))
	assert.Equal(t, maxSchemaRetryDelay, adapter.retryDelay(5))
}

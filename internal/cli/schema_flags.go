package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hedtags/internal/app"
)

// schemaOptions carries the schema acquisition flags shared by every
// command.
type schemaOptions struct {
	Specs            []string
	SchemaPath       string
	Catalog          string
	NoFallback       bool
	BaseURL          string
	LibraryURL       string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func addSchemaFlags(cmd *cobra.Command, opts *schemaOptions) {
	cmd.Flags().StringSliceVar(&opts.Specs, "schema", nil, "Schema spec(s), e.g. 8.2.0 or testlib_1.1.0")
	cmd.Flags().StringVar(&opts.SchemaPath, "schema-path", "", "Local schema XML for the base spec")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Schema catalog YAML path")
	cmd.Flags().BoolVar(&opts.NoFallback, "no-fallback", false, "Fail instead of substituting the bundled schema")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Base schema URL template override")
	cmd.Flags().StringVar(&opts.LibraryURL, "library-url", "", "Library schema URL template override")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout-sec", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "HTTP retry delay in milliseconds")
	_ = viper.BindPFlag("schemas", cmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("schema_path", cmd.Flags().Lookup("schema-path"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("no_fallback", cmd.Flags().Lookup("no-fallback"))
	_ = viper.BindPFlag("base_url", cmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag("library_url", cmd.Flags().Lookup("library-url"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.Flags().Lookup("http-timeout-sec"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
}

func schemaLoadRequest(cmd *cobra.Command, opts schemaOptions) app.LoadRequest {
	return app.LoadRequest{
		Specs:            resolveStrings(cmd, opts.Specs, "schemas", "schema"),
		SchemaPath:       resolveString(cmd, opts.SchemaPath, "schema_path", "schema-path"),
		CatalogPath:      resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		NoFallback:       resolveBool(cmd, opts.NoFallback, "no_fallback", "no-fallback"),
		BaseURL:          resolveString(cmd, opts.BaseURL, "base_url", "base-url"),
		LibraryURL:       resolveString(cmd, opts.LibraryURL, "library_url", "library-url"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout_sec", "http-timeout-sec"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	}
}

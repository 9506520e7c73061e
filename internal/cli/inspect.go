package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hedtags/internal/app"
)

type inspectOptions struct {
	Schema schemaOptions
	Format string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a loaded schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	addSchemaFlags(cmd, &opts.Schema)
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text or yaml")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	format := strings.ToLower(resolveString(cmd, opts.Format, "format", "format"))
	if format != "text" && format != "yaml" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output format must be \"text\" or \"yaml\"")
	}

	service := newAppService()
	result, err := service.InspectSchema(ctx, app.InspectRequest{
		Schemas: schemaLoadRequest(cmd, opts.Schema),
	})
	if err != nil {
		return err
	}

	if format == "yaml" {
		data, err := yaml.Marshal(result)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to render inspect output").
				WithCause(err)
		}
		fmt.Print(string(data))
		return nil
	}

	if result.Library != "" {
		fmt.Printf("schema: %s (library %s)\n", result.Version, result.Library)
	} else {
		fmt.Printf("schema: %s\n", result.Version)
	}
	fmt.Printf("generation: %d\n", result.Generation)
	fmt.Printf("source: %s\n", result.Source)
	if result.UsedFallback {
		fmt.Println("fallback: bundled schema substituted")
	}
	fmt.Printf("tags: %d (unique short names: %t)\n", result.TagCount, result.ShortTagsUnique)
	fmt.Printf("unit classes: %d\n", len(result.UnitClasses))
	for _, class := range result.UnitClasses {
		if class.DefaultUnits != "" {
			fmt.Printf("- %s (default %s): %s\n", class.Name, class.DefaultUnits, strings.Join(class.Units, ", "))
			continue
		}
		fmt.Printf("- %s: %s\n", class.Name, strings.Join(class.Units, ", "))
	}
	fmt.Printf("unit modifiers: %d\n", result.UnitModifiers)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hedtags/internal/app"
	"hedtags/internal/types"
)

type convertOptions struct {
	Schema schemaOptions
	Tags   []string
	To     string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [tags...]",
		Short: "Convert tags between short and long form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cmd, opts, args)
		},
	}
	addSchemaFlags(cmd, &opts.Schema)
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "Tag(s) to convert")
	cmd.Flags().StringVar(&opts.To, "to", "long", "Conversion direction: long or short")
	_ = viper.BindPFlag("tags", cmd.Flags().Lookup("tag"))
	_ = viper.BindPFlag("to", cmd.Flags().Lookup("to"))
	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, opts convertOptions, args []string) error {
	service := newAppService()
	tags := append(resolveStrings(cmd, opts.Tags, "tags", "tag"), args...)
	result, err := service.ConvertTags(ctx, app.ConvertRequest{
		Schemas:   schemaLoadRequest(cmd, opts.Schema),
		Tags:      tags,
		Direction: resolveString(cmd, opts.To, "to", "to"),
	})
	if err != nil {
		return err
	}

	// Converted tags go to stdout one per line; issues stay on stderr so
	// the output remains pipeable.
	for _, tag := range result.Tags {
		fmt.Println(tag)
	}
	printIssues(os.Stderr, result.Issues)
	if types.HasErrors(result.Issues) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d tag(s) could not be converted", len(result.Issues)))
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hedtags/internal/app"
	"hedtags/internal/types"
)

type validateOptions struct {
	Schema schemaOptions
	Tags   []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [tags...]",
		Short: "Validate tags against a schema set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, opts, args)
		},
	}
	addSchemaFlags(cmd, &opts.Schema)
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "Tag(s) to validate")
	_ = viper.BindPFlag("tags", cmd.Flags().Lookup("tag"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions, args []string) error {
	service := newAppService()
	tags := append(resolveStrings(cmd, opts.Tags, "tags", "tag"), args...)
	result, err := service.ValidateTags(ctx, app.ValidateRequest{
		Schemas: schemaLoadRequest(cmd, opts.Schema),
		Tags:    tags,
	})
	if err != nil {
		return err
	}

	printIssues(os.Stdout, result.Issues)
	for _, hint := range result.Hints {
		fmt.Fprintln(os.Stderr, hint)
	}
	errorCount, warningCount := issueCounts(result.Issues)
	if !result.Valid {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d validation error(s) across %d tag(s)", errorCount, result.Checked))
	}
	fmt.Printf("validated: %d tag(s), %d warning(s)\n", result.Checked, warningCount)
	return nil
}

func printIssues(w io.Writer, issues []types.Issue) {
	for _, issue := range issues {
		label := color.YellowString("warning")
		if issue.Severity == types.IssueSeverityError {
			label = color.RedString("error")
		}
		fmt.Fprintf(w, "%s %s [%s]: %s\n", label, issue.Tag, issue.Code, issue.Message)
	}
}

func issueCounts(issues []types.Issue) (int, int) {
	errorCount, warningCount := 0, 0
	for _, issue := range issues {
		if issue.Severity == types.IssueSeverityError {
			errorCount++
		} else {
			warningCount++
		}
	}
	return errorCount, warningCount
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		if value != 0 {
			return value
		}
		return viper.GetInt(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}

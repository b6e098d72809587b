package cli

import (
	"context"
	"fmt"

	"github.com/RevCBH/fixtaskdef/internal/config"
	"github.com/RevCBH/fixtaskdef/internal/logging"
	"github.com/RevCBH/fixtaskdef/internal/taskdef"
	"github.com/spf13/cobra"
)

// RunOptions holds flags for the root command
type RunOptions struct {
	Input  string // Descriptor to read (overrides config)
	Output string // Descriptor to write (overrides config)
	DryRun bool   // Show the changes without writing
}

// NewRunCmd creates the root command, which normalizes a task definition
func NewRunCmd(app *App) *cobra.Command {
	opts := RunOptions{}

	cmd := &cobra.Command{
		Use:   "fixtaskdef",
		Short: "Normalize an exported ECS task definition for re-registration",
		Long: `fixtaskdef reads an exported task definition, strips the fields the
registry assigns (taskDefinitionArn, revision, status, ...), removes the cpu
setting of the first container and points NEXT_PUBLIC_API_URL at the
production API. The result is written with two-space indentation.

By default it reads task-definition-frontend-current.json and writes
task-definition-frontend-new.json in the current directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("input") {
				opts.Input = ""
			}
			if !cmd.Flags().Changed("output") {
				opts.Output = ""
			}
			return app.RunNormalize(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", config.DefaultInput, "Task definition to read")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Task definition to write")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show the changes without writing the output")

	return cmd
}

// RunNormalize loads configuration, applies flag overrides and runs the normalizer
func (a *App) RunNormalize(cmd *cobra.Command, opts RunOptions) error {
	cfg, err := config.LoadConfig(a.fs, a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  level,
		Format: cfg.LogFormat,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handler := NewSignalHandler(cancel, logger)
	handler.Start()
	defer handler.Stop()

	normalizer := taskdef.NewNormalizer(a.fs, cmd.OutOrStdout(), logger)

	if opts.DryRun {
		report, err := normalizer.Plan(ctx, cfg.Input)
		if err != nil {
			return err
		}
		RenderReport(cmd.OutOrStdout(), report)
		return nil
	}

	_, err = normalizer.Run(ctx, cfg.Input, cfg.Output)
	return err
}

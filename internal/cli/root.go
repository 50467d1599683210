package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Backland-Labs/n8n-preflight/internal/logger"
	"github.com/Backland-Labs/n8n-preflight/internal/output"
	"github.com/Backland-Labs/n8n-preflight/internal/preflight"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// reportedError marks an error whose status line was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(NewRealDependencies())
	err := cmd.ExecuteContext(ctx)

	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// NewRootCommand creates the root command
func NewRootCommand(deps *Dependencies) *cobra.Command {
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Preflight - environment checks for the n8n/Claude toolchain",
		Long: `Preflight - environment checks for the n8n/Claude toolchain

Preflight verifies that the project is ready to run:
  - .env exists and sets N8N_API_URL and N8N_API_KEY
  - config/claude-code-config.json, if present, declares mcpServers
  - the container runtime (docker) is installed
  - config/system-prompt.md exists

Exit code is 0 when every check passes and 1 otherwise.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "preflight version "+version)
				return err
			}
			return runPreflight(cmd, deps)
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	return cmd
}

// runPreflight loads configuration and runs every check in order
func runPreflight(cmd *cobra.Command, deps *Dependencies) error {
	printer := output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
	if deps.UseColor {
		printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		printer.Failure("Invalid preflight configuration: %v", err)
		return &reportedError{err: fmt.Errorf("failed to load config: %w", err)}
	}

	runID := logger.InitializeFromConfig(cfg)
	log := logger.GetLogger()
	defer func() { _ = log.Sync() }()
	log.Debugf("Starting preflight in %s", cfg.Root)

	runner := preflight.NewRunner(cfg, printer, deps.RuntimeProbe)
	report, err := runner.Run(cmd.Context())
	if err != nil {
		log.Infof("Preflight %s failed after %d checks: %v", runID, len(report.Results), err)
		return &reportedError{err: err}
	}

	log.Infof("Preflight %s passed", runID)
	return nil
}

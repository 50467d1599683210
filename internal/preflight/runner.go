package preflight

import (
	"context"
	"errors"

	"github.com/Backland-Labs/n8n-preflight/internal/config"
	"github.com/Backland-Labs/n8n-preflight/internal/logger"
	"github.com/Backland-Labs/n8n-preflight/internal/output"
)

// Status is the outcome of a single check
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check names, in execution order.
const (
	CheckNameEnvFile      = "env-file"
	CheckNameRequiredVars = "required-vars"
	CheckNameClaudeConfig = "claude-config"
	CheckNameRuntime      = "runtime"
	CheckNameSystemPrompt = "system-prompt"
)

// Result records what one check reported
type Result struct {
	Name    string
	Status  Status
	Message string
}

// Report is the ordered list of results of a run. It stops at the first failure.
type Report struct {
	Results []Result
}

// Passed returns true if no check failed
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFail {
			return false
		}
	}
	return true
}

// Names returns the names of the checks that ran, in order
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		names = append(names, res.Name)
	}
	return names
}

// Runner executes the checks in their fixed order
type Runner struct {
	cfg     *config.Config
	printer *output.Printer
	probe   RuntimeProbe
}

type step struct {
	name string
	run  func(ctx context.Context) (Result, error)
}

// NewRunner creates a runner. A nil probe runs the real runtime binary.
func NewRunner(cfg *config.Config, printer *output.Printer, probe RuntimeProbe) *Runner {
	if probe == nil {
		probe = ExecProbe{}
	}
	return &Runner{cfg: cfg, printer: printer, probe: probe}
}

// Run prints the header, runs every check and stops at the first fatal
// failure, whose *CheckError is returned. On success the summary is printed.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	r.printer.Header("Validating configuration...")

	for _, s := range r.steps() {
		log := logger.GetLogger().WithField("check", s.name)
		timer := log.Timed(s.name)

		res, err := s.run(ctx)
		res.Name = s.name
		if err != nil {
			res.Status = StatusFail
			res.Message = err.Error()
		}
		report.Results = append(report.Results, res)

		switch res.Status {
		case StatusPass:
			if res.Message != "" {
				r.printer.Success("%s", res.Message)
			}
		case StatusWarn:
			r.printer.Warning("%s", res.Message)
			log.Warnf("%s", res.Message)
		case StatusFail:
			r.printFailure(err)
		}

		timer.DoneWithError(err)
		if err != nil {
			return report, err
		}
	}

	r.printer.Summary("All validations passed!")
	return report, nil
}

func (r *Runner) steps() []step {
	envPath := r.cfg.Path(r.cfg.EnvFile)
	envDisplay := r.cfg.EnvFile

	return []step{
		{CheckNameEnvFile, func(context.Context) (Result, error) {
			return Result{Status: StatusPass}, CheckEnvFile(envPath, envDisplay)
		}},
		{CheckNameRequiredVars, func(context.Context) (Result, error) {
			return Result{Status: StatusPass}, CheckRequiredVars(envPath, envDisplay, r.cfg.RequiredVars)
		}},
		{CheckNameClaudeConfig, func(context.Context) (Result, error) {
			found, err := CheckClaudeConfig(r.cfg.Path(r.cfg.ClaudeConfig))
			switch {
			case err != nil:
				return Result{}, err
			case !found:
				return Result{Status: StatusWarn, Message: "Claude config not found - create it before using with Claude Code"}, nil
			}
			return Result{Status: StatusPass, Message: "Claude configuration valid"}, nil
		}},
		{CheckNameRuntime, func(ctx context.Context) (Result, error) {
			if err := CheckRuntime(ctx, r.probe, r.cfg.Runtime, r.cfg.RuntimeTimeout); err != nil {
				return Result{}, err
			}
			return Result{Status: StatusPass, Message: RuntimeDisplayName(r.cfg.Runtime) + " installed"}, nil
		}},
		{CheckNameSystemPrompt, func(context.Context) (Result, error) {
			if err := CheckPrompt(r.cfg.Path(r.cfg.SystemPrompt)); err != nil {
				return Result{}, err
			}
			return Result{Status: StatusPass, Message: "System prompt found"}, nil
		}},
	}
}

func (r *Runner) printFailure(err error) {
	ce, ok := isCheckError(err)
	if !ok {
		if errors.Is(err, context.Canceled) {
			r.printer.Failure("Preflight interrupted")
			return
		}
		r.printer.Failure("%v", err)
		return
	}
	r.printer.Failure("%s", ce.Message)
	for _, name := range ce.Missing {
		r.printer.Item("%s", name)
	}
}

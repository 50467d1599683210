package preflight

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Backland-Labs/n8n-preflight/internal/config"
	"github.com/Backland-Labs/n8n-preflight/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEnv = "N8N_API_URL=http://localhost:5678/api/v1\nN8N_API_KEY=n8n_api_123\n"

type project struct {
	root string
	cfg  *config.Config
}

func newProject(t *testing.T) *project {
	t.Helper()
	root := t.TempDir()
	return &project{
		root: root,
		cfg: &config.Config{
			Root:           root,
			EnvFile:        config.DefaultEnvFile,
			ClaudeConfig:   config.DefaultClaudeConfig,
			SystemPrompt:   config.DefaultSystemPrompt,
			Runtime:        config.DefaultRuntime,
			RuntimeTimeout: time.Second,
			RequiredVars:   config.DefaultRequiredVars,
			Verbosity:      config.VerbosityNormal,
		},
	}
}

func (p *project) write(t *testing.T, rel, content string) *project {
	writeFile(t, filepath.Join(p.root, rel), content)
	return p
}

// complete writes every file a passing run needs
func (p *project) complete(t *testing.T) *project {
	return p.
		write(t, ".env", validEnv).
		write(t, "config/claude-code-config.json", `{"mcpServers":{"n8n-workflows":{"command":"python"}}}`).
		write(t, "config/system-prompt.md", "You build n8n workflows.\n")
}

type runOutput struct {
	report *Report
	err    error
	stdout string
	stderr string
	probe  *stubProbe
}

func (p *project) run(t *testing.T, probeErr error) runOutput {
	t.Helper()
	var out, errOut bytes.Buffer
	probe := &stubProbe{err: probeErr}
	runner := NewRunner(p.cfg, output.NewPrinterWithWriters(&out, &errOut, false), probe)

	report, err := runner.Run(context.Background())
	require.NotNil(t, report)
	return runOutput{report: report, err: err, stdout: out.String(), stderr: errOut.String(), probe: probe}
}

func TestRunAllChecksPass(t *testing.T) {
	p := newProject(t).complete(t)

	res := p.run(t, nil)

	require.NoError(t, res.err)
	assert.True(t, res.report.Passed())
	assert.Equal(t, []string{
		CheckNameEnvFile, CheckNameRequiredVars, CheckNameClaudeConfig, CheckNameRuntime, CheckNameSystemPrompt,
	}, res.report.Names())
	assert.Equal(t, "🔍 Validating configuration...\n\n"+
		"✅ Claude configuration valid\n"+
		"✅ Docker installed\n"+
		"✅ System prompt found\n"+
		"\n✅ All validations passed!\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunMissingEnvFileStopsImmediately(t *testing.T) {
	p := newProject(t)
	p.write(t, "config/system-prompt.md", "x")

	res := p.run(t, nil)

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrMissingFile))
	assert.Equal(t, "❌ .env file not found\n", res.stderr)
	assert.Equal(t, []string{CheckNameEnvFile}, res.report.Names())
	assert.False(t, res.report.Passed())
	assert.Empty(t, res.probe.calls, "runtime must not be probed after a fatal failure")
	assert.NotContains(t, res.stdout, "All validations passed")
}

func TestRunListsEveryMissingVariable(t *testing.T) {
	p := newProject(t).complete(t)
	p.write(t, ".env", "N8N_API_URL=\n# N8N_API_KEY=old\n")

	res := p.run(t, nil)

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrMissingVariable))
	assert.Equal(t, "❌ Missing required environment variables:\n   - N8N_API_URL\n   - N8N_API_KEY\n", res.stderr)
	assert.Empty(t, res.probe.calls)
}

func TestRunInvalidConfigJSON(t *testing.T) {
	p := newProject(t).complete(t)
	p.write(t, "config/claude-code-config.json", `{"mcpServers": {`)

	res := p.run(t, nil)

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrParse))
	assert.True(t, strings.HasPrefix(res.stderr, "❌ Invalid Claude config JSON: "))
	assert.Empty(t, res.probe.calls)
}

func TestRunConfigWithoutServers(t *testing.T) {
	p := newProject(t).complete(t)
	p.write(t, "config/claude-code-config.json", `{"tools": []}`)

	res := p.run(t, nil)

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrInvalidShape))
	assert.Equal(t, "❌ Invalid Claude config: missing mcpServers\n", res.stderr)
}

func TestRunMissingConfigOnlyWarns(t *testing.T) {
	p := newProject(t).
		write(t, ".env", validEnv).
		write(t, "config/system-prompt.md", "prompt")

	res := p.run(t, nil)

	require.NoError(t, res.err)
	assert.True(t, res.report.Passed())
	assert.Equal(t, "⚠️  Claude config not found - create it before using with Claude Code\n", res.stderr)
	assert.Contains(t, res.stdout, "✅ All validations passed!")
	assert.Equal(t, StatusWarn, res.report.Results[2].Status)
	assert.Equal(t, []string{"docker"}, res.probe.calls)
}

func TestRunMissingRuntime(t *testing.T) {
	p := newProject(t).complete(t)

	res := p.run(t, errors.New("executable file not found"))

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrRuntimeNotFound))
	assert.Equal(t, "❌ Docker not found\n", res.stderr)
	assert.NotContains(t, res.stdout, "System prompt")
}

func TestRunInterrupted(t *testing.T) {
	p := newProject(t).complete(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	runner := NewRunner(p.cfg, output.NewPrinterWithWriters(&out, &errOut, false), blockingProbe{})

	report, err := runner.Run(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrRuntimeNotFound))
	assert.Equal(t, "❌ Preflight interrupted\n", errOut.String())
	assert.Equal(t, CheckNameRuntime, report.Results[len(report.Results)-1].Name)
	assert.NotContains(t, out.String(), "System prompt")
}

func TestRunMissingPrompt(t *testing.T) {
	p := newProject(t).
		write(t, ".env", validEnv).
		write(t, "config/claude-code-config.json", `{"mcpServers":{}}`)

	res := p.run(t, nil)

	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrMissingFile))
	assert.Equal(t, "❌ System prompt not found\n", res.stderr)
	assert.Contains(t, res.stdout, "✅ Docker installed")
	assert.NotContains(t, res.stdout, "All validations passed")
}

func TestRunUsesConfiguredLocations(t *testing.T) {
	p := newProject(t)
	p.cfg.EnvFile = "deploy/.env.local"
	p.cfg.SystemPrompt = "prompts/system.md"
	p.cfg.Runtime = "/opt/bin/podman"
	p.cfg.RequiredVars = []string{"N8N_API_URL", "ANTHROPIC_API_KEY"}
	p.write(t, "deploy/.env.local", "N8N_API_URL=u\nANTHROPIC_API_KEY=k\n").
		write(t, "prompts/system.md", "prompt")

	res := p.run(t, nil)

	require.NoError(t, res.err)
	assert.Equal(t, []string{"/opt/bin/podman"}, res.probe.calls)
	assert.Contains(t, res.stdout, "✅ Podman installed")
}

func TestRunWithRealRuntimeBinary(t *testing.T) {
	p := newProject(t).complete(t)
	p.cfg.Runtime = fakeRuntime(t, "docker", 0)

	var out, errOut bytes.Buffer
	runner := NewRunner(p.cfg, output.NewPrinterWithWriters(&out, &errOut, false), nil)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✅ Docker installed")
}

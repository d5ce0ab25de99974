package manifest

import (
	"context"
	"fmt"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/types"
)

// Executor performs single provisioning operations against one
// configuration directory.
type Executor interface {
	ConfigureJDK(ctx context.Context, name, home string) (*types.Result, error)
	SetDefaultJDK(ctx context.Context, name string) (*types.Result, error)
	SetDefaultInspectionProfile(ctx context.Context, profile string) (*types.Result, error)
	SetDefaultMaven(ctx context.Context, mavenHome string) (*types.Result, error)
	DisablePlugins(ctx context.Context, ids []string) (*types.Result, error)
	InstallPlugin(ctx context.Context, pluginID string) (*types.Result, error)
}

// Step is one operation of a manifest run
type Step struct {
	Name string
	run  func(ctx context.Context, exec Executor) (*types.Result, error)
}

// StepResult pairs a step with its outcome
type StepResult struct {
	Step   string        `json:"step"`
	Result *types.Result `json:"result"`
}

// Report is the outcome of a whole run
type Report struct {
	Changed bool         `json:"changed"`
	Steps   []StepResult `json:"steps"`
}

// Steps lists the operations m calls for, in execution order
func (m *Manifest) Steps() []Step {
	var steps []Step

	for _, j := range m.JDKs {
		j := j
		steps = append(steps, Step{
			Name: fmt.Sprintf("configure-jdk %s", j.Name),
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.ConfigureJDK(ctx, j.Name, j.Home)
			},
		})
	}
	if m.DefaultJDK != "" {
		steps = append(steps, Step{
			Name: fmt.Sprintf("set-default-jdk %s", m.DefaultJDK),
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.SetDefaultJDK(ctx, m.DefaultJDK)
			},
		})
	}
	if m.InspectionProfile != "" {
		steps = append(steps, Step{
			Name: fmt.Sprintf("set-default-inspection-profile %s", m.InspectionProfile),
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.SetDefaultInspectionProfile(ctx, m.InspectionProfile)
			},
		})
	}
	if m.MavenHome != "" {
		steps = append(steps, Step{
			Name: fmt.Sprintf("set-default-maven %s", m.MavenHome),
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.SetDefaultMaven(ctx, m.MavenHome)
			},
		})
	}
	if len(m.DisabledPlugins) > 0 {
		steps = append(steps, Step{
			Name: "disable-plugins",
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.DisablePlugins(ctx, m.DisabledPlugins)
			},
		})
	}
	for _, id := range m.Plugins {
		id := id
		steps = append(steps, Step{
			Name: fmt.Sprintf("install-plugin %s", id),
			run: func(ctx context.Context, exec Executor) (*types.Result, error) {
				return exec.InstallPlugin(ctx, id)
			},
		})
	}
	return steps
}

// Apply runs every step of m in order and stops at the first failure. The
// report holds the steps that completed.
func Apply(ctx context.Context, m *Manifest, exec Executor) (*Report, error) {
	logger := logging.GetLogger("manifest")
	report := &Report{}

	for _, step := range m.Steps() {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, errors.ErrInternal, "run cancelled")
		}

		logger.Info().Str("step", step.Name).Msg("Running step")
		res, err := step.run(ctx, exec)
		if err != nil {
			return report, errors.Wrapf(err, errors.GetErrorCode(err), "%s failed", step.Name)
		}

		report.Steps = append(report.Steps, StepResult{Step: step.Name, Result: res})
		report.Changed = report.Changed || res.Changed
	}
	return report, nil
}

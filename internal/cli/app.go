package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/host"
	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/logging"
	"github.com/bgs-labs/sketcher/internal/presets"
	"github.com/bgs-labs/sketcher/internal/registrar"
	"github.com/bgs-labs/sketcher/internal/settings"
	"github.com/bgs-labs/sketcher/internal/userdata"
)

// app wires one add-on instance for the duration of a command.
type app struct {
	logs      *logging.Subsystem
	settings  *settings.Store
	installer *installer.Installer
	host      *host.Memory
	registrar *registrar.Registrar
}

type appOptions struct {
	console      io.Writer
	forcePresets bool
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	logs := logging.New(branding.AddonID(), logging.WithConsole(opts.console))
	inst := installer.New(
		installer.WithInterpreter(interpreter),
		installer.WithLogger(logs.Logger()),
	)

	var storeOpts []settings.Option
	storeOpts = append(storeOpts, settings.WithLevelSetter(logs))
	if dir, err := userdata.GetArtifactsDir(); err == nil {
		if wheel, ok := inst.LocateBundledArtifact(ctx, dir); ok {
			storeOpts = append(storeOpts, settings.WithDefaultPackagePath(wheel))
		}
	}
	configPath, err := userdata.GetConfigPath()
	if err != nil {
		return nil, err
	}
	store, err := settings.Open(configPath, storeOpts...)
	if err != nil {
		return nil, err
	}

	presetDir, err := userdata.GetPresetsDir()
	if err != nil {
		return nil, err
	}
	h := host.NewMemory(hostVersion)
	reg := registrar.New(h, inst, logs, store,
		registrar.WithPresets(presets.Bundled(), presetDir),
		registrar.WithForcePresets(opts.forcePresets),
	)

	return &app{
		logs:      logs,
		settings:  store,
		installer: inst,
		host:      h,
		registrar: reg,
	}, nil
}

// activate runs the add-on activation.
func (a *app) activate(ctx context.Context) error {
	if err := a.registrar.Activate(ctx); err != nil {
		return fmt.Errorf("activating %s: %w", branding.DisplayName(), err)
	}
	return nil
}

// close deactivates the add-on if it is active.
func (a *app) close(ctx context.Context) error {
	err := a.registrar.Deactivate(ctx)
	if errors.Is(err, registrar.ErrNotActive) {
		return nil
	}
	return err
}

// Package prefs builds the add-on preferences panel as plain data and
// renders it as text. Hosts with a widget toolkit draw from the Panel
// value; the CLI prints Render's output.
package prefs

import (
	"strings"

	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/logging"
	"github.com/bgs-labs/sketcher/internal/registrar"
	"github.com/bgs-labs/sketcher/internal/settings"
	"github.com/bgs-labs/sketcher/internal/theme"
)

// Status reports whether the dependent capabilities are registered.
type Status interface {
	Registered() bool
}

// ModuleLocator reports where the native module was found.
type ModuleLocator interface {
	Module() (installer.ModuleInfo, bool)
}

// Action is an install button.
type Action struct {
	Label  string
	Source registrar.Source
}

// SolverBox shows the native module state.
type SolverBox struct {
	Registered  bool
	ModulePath  string
	PackagePath string
	// Actions is empty once the module is registered.
	Actions []Action
	// LastFailure is the reason of the most recent failed install, shown
	// next to the install actions.
	LastFailure string
}

// GeneralBox holds debug and logging settings.
type GeneralBox struct {
	ShowDebug               bool
	LogLevel                logging.Severity
	Levels                  []logging.Severity
	HideInactiveConstraints bool
	AllEntitiesSelectable   bool
	ForceRedraw             bool
}

// Row is one line of the theme listing. Records have no value.
type Row struct {
	Depth  int
	Path   string
	Label  string
	Value  string
	Record bool
}

// ThemeBox lists the theme when expanded.
type ThemeBox struct {
	Expanded bool
	// PresetHeader is shown only while the dependent capabilities are
	// registered.
	PresetHeader bool
	Presets      []string
	Rows         []Row
}

// Panel is the full preferences view.
type Panel struct {
	Solver  SolverBox
	General GeneralBox
	Theme   ThemeBox
}

// Input gathers what Build reads.
type Input struct {
	Status   Status
	Module   ModuleLocator
	Settings *settings.Store
	// LastInstall is the result of the latest install request, if any.
	LastInstall *installer.Result
	// Presets names the available theme presets.
	Presets []string
}

// Build assembles the panel from current state.
func Build(in Input) Panel {
	s := in.Settings
	p := Panel{
		General: GeneralBox{
			ShowDebug:               s.ShowDebugSettings(),
			LogLevel:                s.LogLevel(),
			Levels:                  logging.AllSeverities(),
			HideInactiveConstraints: s.HideInactiveConstraints(),
			AllEntitiesSelectable:   s.AllEntitiesSelectable(),
			ForceRedraw:             s.ForceRedraw(),
		},
	}

	p.Solver.Registered = in.Status.Registered()
	if p.Solver.Registered {
		if m, ok := in.Module.Module(); ok {
			p.Solver.ModulePath = m.Path
		}
	} else {
		p.Solver.PackagePath = s.PackagePath()
		p.Solver.Actions = []Action{
			{Label: "Install from File", Source: registrar.FromPath(s.PackagePath())},
			{Label: "Install from PIP", Source: registrar.FromIndex(branding.NativePackage())},
		}
		if in.LastInstall != nil && !in.LastInstall.OK() {
			p.Solver.LastFailure = in.LastInstall.String()
		}
	}

	p.Theme.Expanded = s.ShowThemeSettings()
	if p.Theme.Expanded {
		p.Theme.PresetHeader = p.Solver.Registered
		if p.Theme.PresetHeader {
			p.Theme.Presets = in.Presets
		}
		p.Theme.Rows = themeRows(s.Theme())
	}
	return p
}

func themeRows(root *theme.Record) []Row {
	var rows []Row
	_ = theme.Walk(root, func(path []string, n theme.Node) error {
		row := Row{Depth: len(path) - 1, Path: strings.Join(path, "."), Label: n.Label()}
		if l, ok := n.(*theme.Leaf); ok {
			row.Value = l.Value()
		} else {
			row.Record = true
		}
		rows = append(rows, row)
		return nil
	})
	return rows
}

package prefs

import (
	"fmt"
	"io"
	"strings"
)

// Render writes p as indented text.
func Render(w io.Writer, p Panel) error {
	b := &strings.Builder{}

	fmt.Fprintln(b, "Solver Module")
	if p.Solver.Registered {
		fmt.Fprintln(b, "  Registered")
		if p.Solver.ModulePath != "" {
			fmt.Fprintf(b, "  Path: %s\n", p.Solver.ModulePath)
		}
	} else {
		fmt.Fprintln(b, "  Module isn't Registered")
		fmt.Fprintf(b, "  Package Path: %s\n", orNone(p.Solver.PackagePath))
		for _, a := range p.Solver.Actions {
			fmt.Fprintf(b, "  [%s] %s\n", a.Label, orNone(a.Source.String()))
		}
		if p.Solver.LastFailure != "" {
			fmt.Fprintf(b, "  Last install failed: %s\n", p.Solver.LastFailure)
		}
	}

	fmt.Fprintln(b, "General")
	fmt.Fprintf(b, "  Log Level: %s\n", p.General.LogLevel.Label())
	fmt.Fprintf(b, "  Hide Inactive Constraints: %s\n", onOff(p.General.HideInactiveConstraints))
	fmt.Fprintf(b, "  All Entities Selectable: %s\n", onOff(p.General.AllEntitiesSelectable))
	if p.General.ShowDebug {
		fmt.Fprintf(b, "  Force Redraw: %s\n", onOff(p.General.ForceRedraw))
	}

	fmt.Fprintln(b, "Theme")
	if p.Theme.Expanded {
		if p.Theme.PresetHeader {
			fmt.Fprintf(b, "  Presets: %s\n", orNone(strings.Join(p.Theme.Presets, ", ")))
		}
		for _, r := range p.Theme.Rows {
			indent := strings.Repeat("  ", r.Depth+1)
			if r.Record {
				fmt.Fprintf(b, "%s%s\n", indent, r.Label)
				continue
			}
			fmt.Fprintf(b, "%s%s: %s\n", indent, r.Label, r.Value)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

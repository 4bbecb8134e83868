package installer

import (
	"context"
	"fmt"
	"strings"
)

// ModuleInfo describes an importable native module.
type ModuleInfo struct {
	Name string
	Path string
}

// Prober checks whether the native module imports and exposes its entry
// point.
type Prober interface {
	Probe(ctx context.Context) (ModuleInfo, error)
}

// ProbeFunc adapts a function to Prober.
type ProbeFunc func(ctx context.Context) (ModuleInfo, error)

// Probe calls f.
func (f ProbeFunc) Probe(ctx context.Context) (ModuleInfo, error) {
	return f(ctx)
}

// ExecProber imports the module in a child interpreter and prints its
// location. The import counts only if Entry is an attribute of the module.
type ExecProber struct {
	Interpreter string
	Module      string
	Entry       string
	Runner      Runner
}

const probeScript = `import importlib, sys
m = importlib.import_module(sys.argv[1])
getattr(m, sys.argv[2])
print(list(getattr(m, "__path__", [getattr(m, "__file__", "")]))[0])`

// Probe runs the import check.
func (p ExecProber) Probe(ctx context.Context) (ModuleInfo, error) {
	runner := p.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	out, err := runner.Run(ctx, p.Interpreter, "-c", probeScript, p.Module, p.Entry)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("importing %s: %w: %s", p.Module, err, lastLine(out))
	}
	return ModuleInfo{Name: p.Module, Path: lastLine(out)}, nil
}

// lastLine returns the last non-empty line of command output.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

package installer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Target is the interpreter and platform a wheel must be built for.
type Target struct {
	Platform string // "linux", "macosx" or "win"
	Major    uint64
	Minor    uint64
}

// PlatformTag returns the wheel platform fragment for a GOOS value.
func PlatformTag(goos string) string {
	switch goos {
	case "linux":
		return "linux"
	case "darwin":
		return "macosx"
	case "windows":
		return "win"
	default:
		return goos
	}
}

// CurrentPlatform returns the platform fragment for this process.
func CurrentPlatform() string {
	return PlatformTag(runtime.GOOS)
}

// ParseInterpreterVersion reads output such as "Python 3.10.12" and returns
// a target for the current platform.
func ParseInterpreterVersion(output string) (Target, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) == 0 {
		return Target{}, fmt.Errorf("empty interpreter version output")
	}
	raw := fields[len(fields)-1]
	v, err := semver.NewVersion(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parsing interpreter version %q: %w", raw, err)
	}
	return Target{Platform: CurrentPlatform(), Major: v.Major(), Minor: v.Minor()}, nil
}

// PythonTag returns the CPython tag, e.g. "cp310".
func (t Target) PythonTag() string {
	return fmt.Sprintf("cp%d%d", t.Major, t.Minor)
}

// Pattern returns the artifact filename glob for the target,
// e.g. "*cp310*linux*.whl".
func (t Target) Pattern() string {
	return fmt.Sprintf("*%s*%s*.whl", t.PythonTag(), t.Platform)
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%d.%d", t.Platform, t.Major, t.Minor)
}

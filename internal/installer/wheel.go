package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Wheel holds the tags encoded in a wheel filename:
// {name}-{version}(-{build})?-{python}-{abi}-{platform}.whl
type Wheel struct {
	Name     string
	Version  string
	Python   []string
	ABI      []string
	Platform []string
}

// ParseWheelName parses the base name of a wheel file.
func ParseWheelName(filename string) (Wheel, error) {
	base := filepath.Base(filename)
	if !strings.HasSuffix(base, ".whl") {
		return Wheel{}, fmt.Errorf("%s is not a wheel file", base)
	}
	parts := strings.Split(strings.TrimSuffix(base, ".whl"), "-")
	if len(parts) != 5 && len(parts) != 6 {
		return Wheel{}, fmt.Errorf("%s: malformed wheel name", base)
	}
	n := len(parts)
	return Wheel{
		Name:     parts[0],
		Version:  parts[1],
		Python:   strings.Split(parts[n-3], "."),
		ABI:      strings.Split(parts[n-2], "."),
		Platform: strings.Split(parts[n-1], "."),
	}, nil
}

// Compatible reports whether the wheel was built for t: one python tag must
// equal t's CPython tag and one platform tag must carry t's platform.
func (w Wheel) Compatible(t Target) bool {
	return w.matchesPython(t) && w.matchesPlatform(t)
}

func (w Wheel) matchesPython(t Target) bool {
	want := t.PythonTag()
	for _, tag := range w.Python {
		if tag == want {
			return true
		}
	}
	return false
}

func (w Wheel) matchesPlatform(t Target) bool {
	for _, tag := range w.Platform {
		if strings.Contains(tag, t.Platform) {
			return true
		}
	}
	return false
}

// mismatch explains why w does not fit t.
func (w Wheel) mismatch(t Target) string {
	var reasons []string
	if !w.matchesPython(t) {
		reasons = append(reasons, fmt.Sprintf("built for %s, interpreter is %s", strings.Join(w.Python, "."), t.PythonTag()))
	}
	if !w.matchesPlatform(t) {
		reasons = append(reasons, fmt.Sprintf("built for %s, platform is %s", strings.Join(w.Platform, "."), t.Platform))
	}
	return strings.Join(reasons, "; ")
}

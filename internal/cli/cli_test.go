package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/registrar"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupEnv points every add-on location into a temp dir. The interpreter
// does not exist, so the native module never imports.
func setupEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("BGS_HOME", filepath.Join(root, "home"))
	t.Setenv("BGS_CONFIG", "")
	t.Setenv("BGS_SCRIPTS", "")
	t.Setenv("BGS_ARTIFACTS", filepath.Join(root, "wheels"))
	t.Setenv("TMPDIR", filepath.Join(root, "tmp"))
	if err := os.MkdirAll(filepath.Join(root, "tmp"), 0755); err != nil {
		t.Fatal(err)
	}
	return root
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--python", filepath.Join(t.TempDir(), "no-python")}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigSetGet(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "config", "set", "logging_level", "debug")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if out != "Set logging_level = DEBUG\n" {
		t.Errorf("config set output = %q", out)
	}

	out, err = runCLI(t, "config", "get", "logging_level")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if out != "DEBUG\n" {
		t.Errorf("config get output = %q", out)
	}

	if _, err := runCLI(t, "config", "set", "no_such_key", "1"); err == nil {
		t.Error("config set accepted an unknown key")
	}
}

func TestStatusWithoutModule(t *testing.T) {
	root := setupEnv(t)

	out, err := runCLI(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"State: base registered", "Module isn't Registered", "[Install from PIP] py-slvs"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	preset := filepath.Join(root, "home", "scripts", "presets", "bgs", "theme", "default.yaml")
	if _, err := os.Stat(preset); err != nil {
		t.Errorf("bundled presets not installed on activation: %v", err)
	}
}

func TestStatusRejectsOldHost(t *testing.T) {
	setupEnv(t)

	_, err := runCLI(t, "--host-version", "2.79.0", "status")
	if !errors.Is(err, registrar.ErrUnsupportedHost) {
		t.Fatalf("status error = %v, want ErrUnsupportedHost", err)
	}
}

func TestEnableCycle(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "enable")
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	for _, want := range []string{
		"State: base registered",
		"  + operator:view3d.slvs_install_package\n",
		"  - preferences\n",
		"State: unregistered",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("enable output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sketcher.scene") {
		t.Errorf("dependent capability registered without the module:\n%s", out)
	}
}

func TestInstallMissingFile(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "install", "--file", "/nonexistent.whl")
	if !errors.Is(err, installer.ErrNotFound) {
		t.Fatalf("install error = %v, want ErrNotFound", err)
	}
	for _, want := range []string{"State: base registered", "Last install failed: not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("install output missing %q:\n%s", want, out)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "presets")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	if !strings.Contains(out, "theme/high_contrast.yaml") {
		t.Errorf("presets output = %q", out)
	}

	out, err = runCLI(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "nothing copied") {
		t.Errorf("second presets run output = %q", out)
	}

	out, err = runCLI(t, "presets", "--force")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "theme/default.yaml") {
		t.Errorf("forced presets output = %q", out)
	}
}

func TestThemeApplyAndSave(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "presets"); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "theme", "presets")
	if err != nil {
		t.Fatal(err)
	}
	if out != "default\nhigh_contrast\n" {
		t.Errorf("theme presets output = %q", out)
	}

	if _, err := runCLI(t, "theme", "apply", "high_contrast"); err != nil {
		t.Fatalf("theme apply: %v", err)
	}
	out, err = runCLI(t, "config", "get", "theme.entity.default")
	if err != nil {
		t.Fatal(err)
	}
	if out != "#FFFFFFFF\n" {
		t.Errorf("entity.default after apply = %q", out)
	}

	if _, err := runCLI(t, "theme", "save", "mine"); err != nil {
		t.Fatalf("theme save: %v", err)
	}
	out, err = runCLI(t, "theme", "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "mine\n") {
		t.Errorf("saved preset not listed: %q", out)
	}

	if _, err := runCLI(t, "theme", "apply", "../escape"); err == nil {
		t.Error("theme apply accepted a path as preset name")
	}
}

func TestThemeReset(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "config", "set", "theme.entity.default", "#123456"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "config", "set", "theme.size.point", "11"); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "theme", "reset", "entity.default")
	if err != nil {
		t.Fatalf("theme reset: %v", err)
	}
	if out != "Reset 1 theme value(s)\n" {
		t.Errorf("theme reset output = %q", out)
	}
	if out, _ := runCLI(t, "config", "get", "theme.entity.default"); out != "#000000CC\n" {
		t.Errorf("entity.default after reset = %q", out)
	}
	if out, _ := runCLI(t, "config", "get", "theme.size.point"); out != "11\n" {
		t.Errorf("size.point after partial reset = %q", out)
	}

	if _, err := runCLI(t, "theme", "reset"); err != nil {
		t.Fatalf("theme reset: %v", err)
	}
	if out, _ := runCLI(t, "config", "get", "theme.size.point"); out != "5\n" {
		t.Errorf("size.point after full reset = %q", out)
	}
	if _, err := runCLI(t, "theme", "reset", "entity.missing"); err == nil {
		t.Error("theme reset accepted an unknown property")
	}
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	out, err := runCLI(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1.2.3\n" {
		t.Errorf("version --short = %q", out)
	}
}

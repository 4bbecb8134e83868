package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/logging"
	"github.com/bgs-labs/sketcher/internal/theme"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// LevelSetter receives log level changes.
type LevelSetter interface {
	SetLevel(logging.Severity)
}

// ChangeFunc is called after a field that affects drawing changes.
type ChangeFunc func(Field)

// Store holds one installation's preferences. Reads go through v, which
// layers environment overrides and defaults over the file. Writes go to
// both v and file; only file is saved, so overrides never reach disk.
type Store struct {
	mu        sync.Mutex
	v         *viper.Viper
	file      *viper.Viper
	path      string
	theme     *theme.Record
	levels    LevelSetter
	observers []ChangeFunc
}

// Option configures a Store.
type Option func(*Store)

// WithLevelSetter wires log level changes to s.
func WithLevelSetter(s LevelSetter) Option {
	return func(st *Store) {
		st.levels = s
	}
}

// WithObserver registers fn for change notifications.
func WithObserver(fn ChangeFunc) Option {
	return func(st *Store) {
		st.observers = append(st.observers, fn)
	}
}

// WithDefaultPackagePath sets the package path used until one is saved,
// typically a bundled wheel.
func WithDefaultPackagePath(path string) Option {
	return func(st *Store) {
		st.v.SetDefault(string(FieldPackagePath), path)
	}
}

// WithTheme replaces the default theme tree.
func WithTheme(root *theme.Record) Option {
	return func(st *Store) {
		st.theme = root
	}
}

// Open loads the settings at path, applying defaults for anything unset.
// A missing file is not an error; it is created on the first write.
// Environment variables prefixed with BGS_ override stored values.
func Open(path string, opts ...Option) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(string(FieldPackagePath), "")
	v.SetDefault(string(FieldLogLevel), logging.DefaultSeverity.String())
	v.SetDefault(string(FieldHideInactiveConstraints), true)
	v.SetDefault(string(FieldAllEntitiesSelectable), false)
	v.SetDefault(string(FieldForceRedraw), false)
	v.SetDefault(string(FieldShowDebugSettings), false)
	v.SetDefault(string(FieldShowThemeSettings), false)

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType(fileType)

	s := &Store{v: v, file: file, path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}

	for _, r := range []*viper.Viper{v, file} {
		if err := r.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}
	s.loadTheme()
	return s, nil
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// PackagePath returns the wheel path offered for installation.
func (s *Store) PackagePath() string {
	return s.v.GetString(string(FieldPackagePath))
}

// LogLevel returns the configured severity. Unknown stored values read as
// the default.
func (s *Store) LogLevel() logging.Severity {
	sev, err := logging.ParseSeverity(s.v.GetString(string(FieldLogLevel)))
	if err != nil {
		return logging.DefaultSeverity
	}
	return sev
}

// HideInactiveConstraints reports whether constraints of inactive sketches
// are hidden.
func (s *Store) HideInactiveConstraints() bool {
	return s.v.GetBool(string(FieldHideInactiveConstraints))
}

// AllEntitiesSelectable reports whether entities outside the active sketch
// can be selected.
func (s *Store) AllEntitiesSelectable() bool {
	return s.v.GetBool(string(FieldAllEntitiesSelectable))
}

// ForceRedraw reports whether entities are redrawn every frame.
func (s *Store) ForceRedraw() bool {
	return s.v.GetBool(string(FieldForceRedraw))
}

// ShowDebugSettings reports whether the debug box is expanded.
func (s *Store) ShowDebugSettings() bool {
	return s.v.GetBool(string(FieldShowDebugSettings))
}

// ShowThemeSettings reports whether the theme box is expanded.
func (s *Store) ShowThemeSettings() bool {
	return s.v.GetBool(string(FieldShowThemeSettings))
}

// Theme returns the theme tree. Write leaves through SetThemeValue so they
// persist.
func (s *Store) Theme() *theme.Record {
	return s.theme
}

// SetPackagePath stores the wheel path.
func (s *Store) SetPackagePath(path string) error {
	return s.write(FieldPackagePath, path)
}

// SetLogLevel stores the severity. The logging subsystem already uses the
// new level when this returns.
func (s *Store) SetLogLevel(level logging.Severity) error {
	if s.levels != nil {
		s.levels.SetLevel(level)
	}
	return s.write(FieldLogLevel, level.String())
}

// SetHideInactiveConstraints stores the flag and notifies observers.
func (s *Store) SetHideInactiveConstraints(v bool) error {
	return s.write(FieldHideInactiveConstraints, v)
}

// SetAllEntitiesSelectable stores the flag and notifies observers.
func (s *Store) SetAllEntitiesSelectable(v bool) error {
	return s.write(FieldAllEntitiesSelectable, v)
}

// SetForceRedraw stores the flag.
func (s *Store) SetForceRedraw(v bool) error {
	return s.write(FieldForceRedraw, v)
}

// SetShowDebugSettings stores the flag.
func (s *Store) SetShowDebugSettings(v bool) error {
	return s.write(FieldShowDebugSettings, v)
}

// SetShowThemeSettings stores the flag.
func (s *Store) SetShowThemeSettings(v bool) error {
	return s.write(FieldShowThemeSettings, v)
}

// SetThemeValue validates and stores a theme leaf by dotted path.
func (s *Store) SetThemeValue(dotted, value string) error {
	leaf, err := theme.Lookup(s.theme, dotted)
	if err != nil {
		return err
	}
	if err := leaf.Set(value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(themePrefix+dotted, leaf.Value())
	return s.saveLocked()
}

// ApplyPreset applies a theme preset and persists the leaves it sets.
func (s *Store) ApplyPreset(p *theme.Preset) error {
	if err := p.Apply(s.theme); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, leaves := theme.Leaves(s.theme)
	for key := range p.Values {
		s.setLocked(themePrefix+key, leaves[key].Value())
	}
	return s.saveLocked()
}

// ResetTheme restores theme leaves to their defaults and persists them.
// With no paths every leaf is reset. Unknown paths fail before anything
// changes.
func (s *Store) ResetTheme(dotted ...string) error {
	if len(dotted) == 0 {
		dotted, _ = theme.Leaves(s.theme)
	}
	targets := make([]*theme.Leaf, len(dotted))
	for i, key := range dotted {
		leaf, err := theme.Lookup(s.theme, key)
		if err != nil {
			return err
		}
		targets[i] = leaf
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, leaf := range targets {
		leaf.Reset()
		s.setLocked(themePrefix+dotted[i], leaf.Value())
	}
	return s.saveLocked()
}

// Get returns a flat field or a theme leaf ("theme.<path>") as text.
func (s *Store) Get(key string) (string, error) {
	if dotted, ok := strings.CutPrefix(key, themePrefix); ok {
		leaf, err := theme.Lookup(s.theme, dotted)
		if err != nil {
			return "", err
		}
		return leaf.Value(), nil
	}
	f, err := parseField(key)
	if err != nil {
		return "", err
	}
	switch {
	case f == FieldLogLevel:
		return s.LogLevel().String(), nil
	case f.isBool():
		return strconv.FormatBool(s.v.GetBool(key)), nil
	default:
		return s.v.GetString(key), nil
	}
}

// Set parses value for the field named key and stores it through the
// typed setter, so side effects apply.
func (s *Store) Set(key, value string) error {
	if dotted, ok := strings.CutPrefix(key, themePrefix); ok {
		return s.SetThemeValue(dotted, value)
	}
	f, err := parseField(key)
	if err != nil {
		return err
	}
	switch f {
	case FieldPackagePath:
		return s.SetPackagePath(value)
	case FieldLogLevel:
		sev, err := logging.ParseSeverity(value)
		if err != nil {
			return err
		}
		return s.SetLogLevel(sev)
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s expects true or false, got %q", key, value)
	}
	switch f {
	case FieldHideInactiveConstraints:
		return s.SetHideInactiveConstraints(b)
	case FieldAllEntitiesSelectable:
		return s.SetAllEntitiesSelectable(b)
	case FieldForceRedraw:
		return s.SetForceRedraw(b)
	case FieldShowDebugSettings:
		return s.SetShowDebugSettings(b)
	default:
		return s.SetShowThemeSettings(b)
	}
}

func (s *Store) write(f Field, value any) error {
	s.mu.Lock()
	s.setLocked(string(f), value)
	err := s.saveLocked()
	observers := s.observers
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if f.notifies() {
		for _, fn := range observers {
			fn(f)
		}
	}
	return nil
}

func (s *Store) setLocked(key string, value any) {
	s.v.Set(key, value)
	s.file.Set(key, value)
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := s.file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// loadTheme copies persisted theme values into the tree. Values that no
// longer fit their leaf keep the default.
func (s *Store) loadTheme() {
	order, leaves := theme.Leaves(s.theme)
	for _, key := range order {
		if !s.v.IsSet(themePrefix + key) {
			continue
		}
		_ = leaves[key].Set(s.v.GetString(themePrefix + key))
	}
}

func parseField(key string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

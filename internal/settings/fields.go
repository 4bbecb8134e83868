package settings

// Field names a persisted preference. The value doubles as the config key.
type Field string

const (
	FieldPackagePath             Field = "package_path"
	FieldLogLevel                Field = "logging_level"
	FieldHideInactiveConstraints Field = "hide_inactive_constraints"
	FieldAllEntitiesSelectable   Field = "all_entities_selectable"
	FieldForceRedraw             Field = "force_redraw"
	FieldShowDebugSettings       Field = "show_debug_settings"
	FieldShowThemeSettings       Field = "show_theme_settings"
)

// themePrefix prefixes the config keys of theme leaves.
const themePrefix = "theme."

// Fields lists the flat fields in display order.
func Fields() []Field {
	return []Field{
		FieldPackagePath,
		FieldLogLevel,
		FieldHideInactiveConstraints,
		FieldAllEntitiesSelectable,
		FieldForceRedraw,
		FieldShowDebugSettings,
		FieldShowThemeSettings,
	}
}

func (f Field) isBool() bool {
	switch f {
	case FieldHideInactiveConstraints, FieldAllEntitiesSelectable, FieldForceRedraw,
		FieldShowDebugSettings, FieldShowThemeSettings:
		return true
	default:
		return false
	}
}

// notifies reports whether changing f must refresh dependent visual state.
func (f Field) notifies() bool {
	return f == FieldHideInactiveConstraints || f == FieldAllEntitiesSelectable
}

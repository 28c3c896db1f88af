package mods

// WispModule represents a Wisp module -- specifically, the module
// configuration read from its `wisp-mod.toml` file.  A module is one source
// unit plus the build settings for it; single-file builds work without one.
type WispModule struct {
	// Name is the name of the module; the module's source file is expected at
	// `<name>.wisp` in the module root
	Name string

	// ModuleRoot is the path to the root directory of the current module
	ModuleRoot string

	// Version is the Wisp version the module was written against
	Version string

	// OutputPath is the path the compiled binary module is written to,
	// relative to the module root.  It may be empty, in which case the output
	// path is derived from the module name.
	OutputPath string
}

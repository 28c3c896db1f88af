package common

const (
	SrcFileExtension = ".wisp"
	OutFileExtension = ".wasm"
	ModuleFileName   = "wisp-mod.toml"
	WispVersion      = "0.1.0"
)

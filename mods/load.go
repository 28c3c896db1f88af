package mods

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"wisp/common"
	"wisp/logging"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
	Build  *tomlBuild  `toml:"build"`
}

// tomlModule represents a Wisp module as it is encoded in TOML
type tomlModule struct {
	Name    string `toml:"name"`
	Version string `toml:"wisp-version"`
}

// tomlBuild represents a module's build settings as they are encoded in TOML
type tomlBuild struct {
	OutputPath string `toml:"output,omitempty"`
}

// LoadModule loads and validates a module.  `path` is the path to the module
// directory (the directory enclosing the module file).
func LoadModule(path string) (*WispModule, error) {
	buff, err := ioutil.ReadFile(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	wispMod := &WispModule{ModuleRoot: path}
	if err := validateModule(wispMod, tmf); err != nil {
		return nil, err
	}

	return wispMod, nil
}

// validateModule checks the module file contents and moves them onto the
// final module
func validateModule(wispMod *WispModule, tmf *tomlModuleFile) error {
	if tmf.Module == nil || tmf.Module.Name == "" {
		return fmt.Errorf("missing module name for module at %s", wispMod.ModuleRoot)
	}

	wispMod.Name = tmf.Module.Name
	wispMod.Version = tmf.Module.Version

	// a version mismatch is worth flagging but should not stop a build
	if wispMod.Version != "" && wispMod.Version != common.WispVersion {
		logging.PrintWarningMessage(
			"Module Warning",
			fmt.Sprintf("module `%s` was written for wisp v%s (compiler is v%s)", wispMod.Name, wispMod.Version, common.WispVersion),
		)
	}

	if tmf.Build != nil {
		wispMod.OutputPath = tmf.Build.OutputPath
	}

	return nil
}

// InitModule generates a fresh module file in the given directory.  It fails
// if the directory already contains one.
func InitModule(name, dir string) error {
	modFilePath := filepath.Join(dir, common.ModuleFileName)
	if _, err := os.Stat(modFilePath); err == nil {
		return fmt.Errorf("%s already exists at %s", common.ModuleFileName, dir)
	}

	tmf := &tomlModuleFile{
		Module: &tomlModule{
			Name:    name,
			Version: common.WispVersion,
		},
		Build: &tomlBuild{
			OutputPath: name + common.OutFileExtension,
		},
	}

	buff, err := toml.Marshal(tmf)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(modFilePath, buff, 0644)
}

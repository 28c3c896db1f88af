package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ComedicChimera/olive"

	"wisp/build"
	"wisp/common"
	"wisp/logging"
	"wisp/mods"
)

// Execute runs the main `wisp` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("wisp", "wisp is a tool for compiling Wisp modules", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile source code", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the source file or module directory to build", true)
	buildCmd.AddStringArg("output", "o", "the path to write the compiled module to", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the module", true)

	cli.AddSubcommand("version", "print the Wisp version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string))
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Wisp Version", common.WispVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	// extract CLI data
	srcRelPath, _ := result.PrimaryArg()

	srcPath, err := filepath.Abs(srcRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	outArgVal, ok := result.Arguments["output"]
	selectedOutput := ""
	if ok {
		selectedOutput = outArgVal.(string)
	}

	srcPath, outPath, err := resolveBuildPaths(srcPath, selectedOutput)
	if err != nil {
		logging.PrintErrorMessage("Module Load Error", err)
		return
	}

	// initialize the logger and build the source unit
	logging.Initialize(loglevel)
	logging.DisplayCompileHeader(common.WispVersion, "wasm32")

	c := build.NewCompiler(srcPath, outPath)
	c.Compile()

	logging.FinishCompilation()
}

// resolveBuildPaths determines the source file and output file of a build.  A
// directory argument means "build the module in this directory": its module
// file names the source and (optionally) the output.  An explicit output path
// always wins.
func resolveBuildPaths(path, selectedOutput string) (string, string, error) {
	srcPath := path

	finfo, err := os.Stat(path)
	if err != nil {
		return "", "", err
	}

	var mod *mods.WispModule
	if finfo.IsDir() {
		if mod, err = mods.LoadModule(path); err != nil {
			return "", "", err
		}

		srcPath = filepath.Join(path, mod.Name+common.SrcFileExtension)
	} else if !strings.HasSuffix(path, common.SrcFileExtension) {
		return "", "", errors.New("source file must have a " + common.SrcFileExtension + " extension")
	}

	outPath := selectedOutput
	if outPath == "" {
		if mod != nil && mod.OutputPath != "" {
			outPath = filepath.Join(mod.ModuleRoot, mod.OutputPath)
		} else {
			outPath = strings.TrimSuffix(srcPath, common.SrcFileExtension) + common.OutFileExtension
		}
	}

	return srcPath, outPath, nil
}

// execModCommand executes the `mod` subcommand and its subcommands.  It
// handles all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		modNameValue, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modNameValue, workDir); err != nil {
			logging.PrintErrorMessage("Module Init Error", err)
		}
	}
}

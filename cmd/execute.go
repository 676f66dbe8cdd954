package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ComedicChimera/olive"

	"github.com/toanphambk/ts2scl/build"
	"github.com/toanphambk/ts2scl/codegen"
	"github.com/toanphambk/ts2scl/project"
	"github.com/toanphambk/ts2scl/report"
)

// Execute runs the main `ts2scl` application.
func Execute() {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("ts2scl", "ts2scl compiles attributed source programs into SCL blocks", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a project into SCL block sources", true)
	buildCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	cli.AddSubcommand("version", "print the ts2scl version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportConfigError("CLI Usage", err)
		return
	}

	// process the inputed command line
	loglevel := ""
	if lvl, ok := result.Arguments["loglevel"]; ok {
		loglevel = lvl.(string)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, loglevel)
	case "version":
		report.InitReporter(report.LogLevelFromName("verbose"))
		report.ReportCompileHeader("ts2scl", project.CompilerVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	projectRelPath, _ := result.PrimaryArg()

	projectPath, err := filepath.Abs(projectRelPath)
	if err != nil {
		report.InitReporter(report.LogLevelFromName(loglevel))
		report.ReportConfigError("Path", err)
		return
	}

	// attempt to load the project; the project file's log level applies
	// unless the CLI pins one
	proj, err := project.Load(projectPath)
	if err != nil {
		report.InitReporter(report.LogLevelFromName(loglevel))
		report.ReportConfigError("Project Load", err)
		return
	}

	if loglevel == "" {
		loglevel = proj.LogLevel
	}

	report.InitReporter(report.LogLevelFromName(loglevel))
	report.ReportCompileHeader(proj.Name, proj.TIAVersion)

	c := build.NewCompiler(build.FileLoader{}, proj.Defaults)
	arts, ok := c.Compile(proj.EntryPath)
	if ok {
		if err := writeArtifacts(proj, arts); err != nil {
			report.ReportConfigError("Output", err)
			return
		}
	}

	report.ReportCompilationFinished(len(arts))
}

// writeArtifacts writes each artifact under the project's output directory.
func writeArtifacts(proj *project.Project, arts []*codegen.Artifact) error {
	if err := os.MkdirAll(proj.OutputDir, 0o755); err != nil {
		return err
	}

	for _, art := range arts {
		text := art.Text
		if proj.CRLF {
			text = strings.ReplaceAll(text, "\n", "\r\n")
		}

		path := filepath.Join(proj.OutputDir, art.Name+art.Suffix)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return err
		}
	}

	return nil
}

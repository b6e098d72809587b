package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// VersionInfo holds build metadata injected via ldflags
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Filesystem used for config, input and output
	fs afero.Fs

	// Runtime state
	verbose    bool
	configPath string

	// Version information
	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{
		fs: afero.NewOsFs(),
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = NewRunCmd(a)

	// Add persistent flags
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output (debug logging on stderr)")
	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default .fixtaskdef.yaml if present)")

	a.rootCmd.AddCommand(NewVersionCmd(a))
}

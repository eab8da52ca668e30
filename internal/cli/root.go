// Package cli wires the navigator engine, the demos, the script store and
// the trace into the navigator command.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"navigator/internal/log"
	"navigator/internal/store"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *Config
	cfgFile string
}

// NewRootCommand builds the navigator command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:   "navigator",
		Short: "Terminal menus with scripted replay",
		Long: `navigator runs nested terminal menus that can be driven by a person, by a
script of queued inputs, or by both at once.

Examples:
  navigator demos                          List the bundled menu trees
  navigator run quiz                       Take the quiz
  navigator run quiz --script answers.yaml Replay answers from a file
  navigator run flow --record session      Save what you type for later`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./navigator.yaml or $HOME/.config/navigator/navigator.yaml)")
	flags.String("log-file", "", "write the debug log to this file")
	flags.String("log-level", "warn", "debug, info, warn or error")
	flags.String("store", "", "script database path")
	a.v.BindPFlag("log.file", flags.Lookup("log-file"))
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("store.path", flags.Lookup("store"))

	root.AddCommand(newRunCommand(a))
	root.AddCommand(newDemosCommand())
	root.AddCommand(newScriptCommand(a))
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	// An empty --store flag must not hide the default.
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath()
	}
	a.cfg = cfg

	if cfg.Log.File != "" {
		if err := log.SetFileOutput(cfg.Log.File); err != nil {
			return err
		}
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	log.Debug("configuration loaded", "config", a.v.ConfigFileUsed(), "store", cfg.Store.Path)
	return nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.Store.Path)
}

// Execute runs the command line and returns the process exit status.
// Errors are reported on stderr.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return ExitCode(err)
}

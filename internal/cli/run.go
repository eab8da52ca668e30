package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"navigator/internal/demo"
	"navigator/internal/log"
	"navigator/internal/port"
	"navigator/internal/script"
	"navigator/internal/trace"
	"navigator/pkg/nav"
)

type runOptions struct {
	scriptFile  string
	stored      string
	record      string
	traceFile   string
	traceInline string
	screen      bool
}

func newRunCommand(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <demo>",
		Short: "Run a demo menu tree",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, d := range demo.All() {
				names = append(names, d.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scriptFile, "script", "", "queue the steps of a script file (.yaml or text) before starting")
	flags.StringVar(&opts.stored, "stored", "", "queue the steps of a stored script before starting")
	flags.StringVar(&opts.record, "record", "", "store everything typed during the session under this name")
	flags.StringVar(&opts.traceFile, "trace", "", "write the menu graph to this file (.dot, .svg or .png)")
	flags.StringVar(&opts.traceInline, "trace-inline", "", "draw the menu graph in the terminal afterwards: auto, kitty, iterm or sixel")
	flags.BoolVar(&opts.screen, "screen", false, "use a full screen terminal instead of plain lines")
	a.v.BindPFlag("ui.screen", flags.Lookup("screen"))
	return cmd
}

func (a *app) run(cmd *cobra.Command, name string, opts *runOptions) error {
	ctx := cmd.Context()

	d, ok := demo.Lookup(name)
	if !ok {
		return errors.Newf("unknown demo %q (see 'navigator demos')", name)
	}

	steps, err := a.preload(ctx, opts)
	if err != nil {
		return err
	}

	var p nav.Port
	if a.cfg.UI.Screen {
		screen, err := port.OpenScreen()
		if err != nil {
			return err
		}
		defer screen.Close()
		p = screen
	} else {
		enc, err := inputEncoding(a.cfg.UI.Encoding)
		if err != nil {
			return err
		}
		var consoleOpts []port.ConsoleOption
		if enc != nil {
			consoleOpts = append(consoleOpts, port.WithEncoding(enc))
		}
		p = port.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), consoleOpts...)
	}

	var observers []nav.Observer
	var tracer *trace.Recorder
	if opts.traceFile != "" || opts.traceInline != "" {
		tracer = trace.NewRecorder()
		observers = append(observers, tracer)
	}
	var recorder *script.Recorder
	if opts.record != "" {
		recorder = script.NewRecorder()
		observers = append(observers, recorder)
	}

	c := nav.New(
		nav.WithPort(p),
		nav.WithStyle(nav.Style{BarLength: a.cfg.Style.BarLength}),
		nav.WithObserver(nav.Observers(observers...)),
	)
	c.Execute(steps...)

	log.Info("running demo", "demo", d.Name, "queued", len(steps))
	runErr := d.Run(c)
	if errors.Is(runErr, port.ErrInterrupted) {
		log.Info("session interrupted", "demo", d.Name)
		runErr = nil
	}
	if nav.IsAutomationError(runErr) {
		runErr = &ExitError{Code: ExitAutomation, Err: runErr}
	}
	if err := p.Flush(); err != nil {
		runErr = errors.CombineErrors(runErr, errors.Wrap(err, "flush output"))
	}

	if recorder != nil {
		if err := a.saveRecording(ctx, recorder.Script(opts.record, "recorded from "+d.Name)); err != nil {
			return errors.CombineErrors(runErr, err)
		}
	}
	if tracer != nil {
		if err := writeTrace(ctx, cmd, tracer, opts); err != nil {
			return errors.CombineErrors(runErr, err)
		}
	}
	return runErr
}

func (a *app) preload(ctx context.Context, opts *runOptions) ([]string, error) {
	var entries []string
	if opts.scriptFile != "" {
		sc, err := readScriptFile(opts.scriptFile)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sc.Entries()...)
	}
	if opts.stored != "" {
		st, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		sc, err := st.Load(ctx, opts.stored)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sc.Entries()...)
	}
	return entries, nil
}

// readScriptFile loads YAML for .yaml and .yml files and the text format
// for anything else.
func readScriptFile(path string) (*script.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sc, err := script.Load(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		if sc.Name == "" {
			sc.Name = baseName(path)
		}
		return sc, nil
	default:
		sc, err := script.ParseText(baseName(path), f)
		return sc, errors.Wrapf(err, "%s", path)
	}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func (a *app) saveRecording(ctx context.Context, sc *script.Script) error {
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(ctx, sc); err != nil {
		return err
	}
	log.Info("recorded session", "name", sc.Name, "steps", len(sc.Steps))
	return nil
}

func writeTrace(ctx context.Context, cmd *cobra.Command, tracer *trace.Recorder, opts *runOptions) error {
	if opts.traceFile != "" {
		f, err := os.Create(opts.traceFile)
		if err != nil {
			return errors.Wrap(err, "create trace file")
		}
		if err := tracer.WriteFile(ctx, f, opts.traceFile); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "close trace file")
		}
	}

	if opts.traceInline != "" {
		protocol, err := parseProtocol(opts.traceInline)
		if err != nil {
			return err
		}
		return tracer.ShowInline(ctx, cmd.OutOrStdout(), protocol, 800)
	}
	return nil
}

func parseProtocol(name string) (trace.Protocol, error) {
	switch strings.ToLower(name) {
	case "auto":
		return trace.DetectProtocol(), nil
	case "kitty":
		return trace.ProtocolKitty, nil
	case "iterm":
		return trace.ProtocolITerm, nil
	case "sixel":
		return trace.ProtocolSixel, nil
	default:
		return trace.ProtocolNone, errors.Newf("unknown inline image protocol %q", name)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/shotmark/internal/config"
	"github.com/example/shotmark/internal/editor"
	"github.com/example/shotmark/internal/export"
	"github.com/example/shotmark/internal/notify"
	"github.com/example/shotmark/internal/session"
	"github.com/example/shotmark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	config      *config.Config
	notifier    *notify.Notifier
	exportAlert bool
	copyAlert   bool
	themeName   string
	saveDir     string
	frameRate   int
	clearOnLoad bool
	shadow      bool
	format      string
	activeTheme *theme.Theme

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) *root {
	child := *r
	child.fs = nil
	child.program = strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &child
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	// Precedence: CLI > Env > Config > Default. Env is folded into the
	// config here so the flag defaults already carry it.
	cfg.ApplyEnv(os.Getenv)
	return newRootWithConfig(cfg, notify.New(notify.LoadPreferences(os.Getenv)))
}

func newRootWithConfig(cfg *config.Config, n *notify.Notifier) *root {
	r := &root{
		fs:       flag.NewFlagSet("shotmark", flag.ContinueOnError),
		program:  "shotmark",
		notifier: n,
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.SetOutput(io.Discard)
	r.fs.BoolVar(&r.exportAlert, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlert, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "color theme for the window (default, dark, light or a .theme file)")
	r.fs.StringVar(&r.saveDir, "save-dir", cfg.SaveDir, "directory for exports without an explicit path")
	r.fs.IntVar(&r.frameRate, "frame-rate", cfg.FrameRate, "frames composited per second")
	r.fs.BoolVar(&r.clearOnLoad, "clear-on-load", cfg.ClearOnLoad, "remove existing shapes when a new image is loaded")
	r.fs.BoolVar(&r.shadow, "shadow", cfg.Export.Shadow, "add a drop shadow to exported images")
	r.fs.StringVar(&r.format, "format", cfg.Export.Format, "export format for generated file names (png or pdf)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if _, err := export.ParseFormat(r.format); err != nil {
		return err
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlert)
		r.notifier.Enable(notify.EventCopy, r.copyAlert)
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r.subcommand("annotate"))
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r.subcommand("draw"))
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r.subcommand("interactive"))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand("config"))
	case "version":
		cmd = &versionCmd{root: r.subcommand("version")}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// loadTheme resolves the theme name against the config file's own themes
// first, then files, embedded and installed themes.
func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) newExporter() *export.Exporter {
	f, err := export.ParseFormat(r.format)
	if err != nil {
		f = export.PNG
	}
	return export.New(
		export.WithDir(r.saveDir),
		export.WithFormat(f),
		export.WithShadow(r.shadow),
		export.WithNotifier(r.notifier),
	)
}

// startEditor runs an editor over a fresh session until the returned stop
// function is called.
func (r *root) startEditor(ctx context.Context, opts ...editor.Option) (*editor.Editor, func()) {
	sess := session.New(session.WithClearOnLoad(r.clearOnLoad))
	base := []editor.Option{editor.WithSession(sess), editor.WithFrameRate(r.frameRate)}
	ed := editor.New(append(base, opts...)...)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("editor: %v", err)
		}
	}()
	return ed, func() {
		cancel()
		<-done
	}
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

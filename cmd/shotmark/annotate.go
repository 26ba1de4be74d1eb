package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/example/shotmark/internal/decode"
	"github.com/example/shotmark/internal/window"
)

var runWindowFn = func(ctx context.Context, w *window.Window, ed window.Editor) { w.Run(ctx, ed) }

// annotateCmd opens the annotation window.
type annotateCmd struct {
	source
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	a.source.register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: a}
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: a}
	}
	if err := a.source.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	blob, ok, err := a.source.read(ctx)
	if err != nil {
		return err
	}

	w := window.New(
		window.WithTitle(a.title()),
		window.WithTheme(a.activeTheme),
		window.WithExporter(a.newExporter()),
		window.WithClipboardReader(readClipboardFn),
	)
	ed, stopEditor := a.startEditor(ctx, w.EditorOptions()...)
	defer stopEditor()

	if ok {
		if err := ed.Load(ctx, blob); err != nil {
			if a.source.file != "" && !errors.Is(err, decode.ErrInvalidPasteType) {
				return err
			}
			log.Printf("annotate: %v", err)
		}
	}
	runWindowFn(ctx, w, ed)
	return nil
}

func (a *annotateCmd) title() string {
	if a.source.file != "" {
		return "shotmark - " + a.source.file
	}
	return "shotmark"
}

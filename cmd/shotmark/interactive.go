package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/shotmark/internal/capture"
	"github.com/example/shotmark/internal/decode"
	"github.com/example/shotmark/internal/editor"
	"github.com/example/shotmark/internal/export"
	"github.com/example/shotmark/internal/interact"
	"github.com/example/shotmark/internal/session"
	"github.com/example/shotmark/internal/shape"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives one editor from console commands, one per line.
type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList

	ed       *editor.Editor
	labels   *interact.Pending
	exporter *export.Exporter
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command and exit (may be repeated)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: i}
		}
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	ctx := context.Background()
	i.labels = &interact.Pending{}
	i.exporter = i.newExporter()
	ed, stop := i.startEditor(ctx,
		editor.WithPrompter(i.labels),
		editor.WithAlerter(editor.AlertFunc(func(msg string) { fmt.Fprintln(i.stderr, msg) })),
	)
	defer stop()
	i.ed = ed

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(ctx, line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const interactiveHelp = `commands:
  load PATH                 load an image file
  paste                     load the image on the clipboard
  capture [interactive]     load a portal screenshot
  select KIND               arrow, box, circle or text
  label TEXT                label for the next text press
  down X Y | move X Y | up X Y
  drag KIND X0 Y0 X1 Y1     press, drag and release in one step
  undo                      remove the newest shape
  list                      print the shapes
  size                      print the image size
  export [PATH|-]           write the annotated image
  copy                      copy the annotated image to the clipboard
  exit`

// executeLine runs one command and reports whether the session should end.
func (i *interactiveCmd) executeLine(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(i.stdout, interactiveHelp)
	case "load":
		if len(rest) != 1 {
			return false, errors.New("usage: load PATH")
		}
		b, err := decode.FromFile(rest[0])
		if err != nil {
			return false, err
		}
		return false, i.load(ctx, b)
	case "paste":
		b, err := readClipboardFn()
		if err != nil {
			return false, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return false, i.load(ctx, b)
	case "capture":
		b, err := captureScreenshotFn(ctx, capture.Options{Interactive: len(rest) > 0 && rest[0] == "interactive"})
		if err != nil {
			return false, fmt.Errorf("failed to capture screen: %w", err)
		}
		return false, i.load(ctx, b)
	case "select":
		if len(rest) != 1 {
			return false, errors.New("usage: select KIND")
		}
		k, err := shape.ParseKind(rest[0])
		if err != nil {
			return false, err
		}
		i.ed.Select(k)
	case "label":
		if len(rest) == 0 {
			i.labels.Withdraw()
			return false, nil
		}
		i.labels.Offer(strings.Join(rest, " "))
	case "down", "move", "up":
		p, err := parsePoint(rest)
		if err != nil {
			return false, fmt.Errorf("%s: %w", cmd, err)
		}
		switch cmd {
		case "down":
			i.ed.PointerDown(p)
		case "move":
			i.ed.PointerMove(p)
		default:
			i.ed.PointerUp(p)
		}
	case "drag":
		if len(rest) != 5 {
			return false, errors.New("usage: drag KIND X0 Y0 X1 Y1")
		}
		k, err := shape.ParseKind(rest[0])
		if err != nil {
			return false, err
		}
		from, err := parsePoint(rest[1:3])
		if err != nil {
			return false, err
		}
		to, err := parsePoint(rest[3:5])
		if err != nil {
			return false, err
		}
		i.ed.Select(k)
		i.ed.PointerDown(from)
		i.ed.PointerMove(to)
		i.ed.PointerUp(to)
	case "undo":
		i.ed.Undo()
	case "list":
		return false, i.list(ctx)
	case "size":
		return false, i.size(ctx)
	case "export":
		return false, i.export(ctx, rest)
	case "copy":
		img, err := i.ed.Export(ctx)
		if err != nil {
			return false, err
		}
		return false, i.exporter.ToClipboard(img)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func (i *interactiveCmd) load(ctx context.Context, b decode.Blob) error {
	if err := i.ed.Load(ctx, b); err != nil {
		return err
	}
	return i.size(ctx)
}

func (i *interactiveCmd) list(ctx context.Context) error {
	var shapes []shape.Shape
	if err := i.ed.Do(ctx, func(s *session.Session, _ *interact.Machine) { shapes = s.List().Shapes() }); err != nil {
		return err
	}
	if len(shapes) == 0 {
		fmt.Fprintln(i.stdout, "no shapes")
	}
	for n, s := range shapes {
		fmt.Fprintf(i.stdout, "%d: %s\n", n+1, s)
	}
	return nil
}

func (i *interactiveCmd) size(ctx context.Context) error {
	var w, h int
	var loaded bool
	if err := i.ed.Do(ctx, func(s *session.Session, _ *interact.Machine) {
		w, h = s.Size()
		loaded = s.HasRaster()
	}); err != nil {
		return err
	}
	if !loaded {
		fmt.Fprintln(i.stdout, "no image loaded")
		return nil
	}
	fmt.Fprintf(i.stdout, "%dx%d\n", w, h)
	return nil
}

func (i *interactiveCmd) export(ctx context.Context, args []string) error {
	img, err := i.ed.Export(ctx)
	if err != nil {
		return err
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "-" {
		return i.exporter.ToWriter(i.stdout, img)
	}
	written, err := i.exporter.ToFile(img, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(i.stdout, "exported %s\n", written)
	return nil
}

func parsePoint(args []string) (shape.Point, error) {
	if len(args) != 2 {
		return shape.Point{}, errors.New("expected X Y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("invalid number %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("invalid number %q", args[1])
	}
	return shape.Pt(x, y), nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/shotmark/internal/editor"
	"github.com/example/shotmark/internal/interact"
	"github.com/example/shotmark/internal/shape"
)

// drawCmd replays drags onto an image without opening a window.
type drawCmd struct {
	source
	output      string
	toClipboard bool
	ops         []drawOp
	*root
	fs *flag.FlagSet
}

// drawOp is one press, drag and release.
type drawOp struct {
	kind     shape.Kind
	from, to shape.Point
	label    string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	d.source.register(fs)
	fs.StringVar(&d.output, "output", "", "output file path, - for stdout (defaults to the input file)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")

	flagArgs, positionals := splitDrawArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: d}
		}
		return nil, err
	}
	positionals = append(positionals, fs.Args()...)
	if err := d.source.validate(); err != nil {
		return nil, err
	}
	if d.source.empty() {
		return nil, errors.New("an input image is required: use -file, -capture or -from-clipboard")
	}
	if d.output == "" && d.source.file == "" && !d.toClipboard {
		return nil, errors.New("output file is required when the input is not a file")
	}
	if len(positionals) == 0 {
		return nil, &UsageError{of: d}
	}
	ops, err := parseDrawOps(positionals)
	if err != nil {
		return nil, err
	}
	d.ops = ops
	return d, nil
}

// splitDrawArgs separates flags from shape arguments so negative
// coordinates are not read as flags.
func splitDrawArgs(args []string) (flags, positionals []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flags, append(positionals, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		if _, err := strconv.ParseFloat(arg, 64); err == nil {
			positionals = append(positionals, arg)
			continue
		}
		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if _, ok := drawValueFlags[name]; ok && i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return flags, positionals
}

var drawValueFlags = map[string]struct{}{
	"file":   {},
	"output": {},
}

// parseDrawOps reads "KIND X0 Y0 X1 Y1" groups. Text takes "text X Y LABEL".
func parseDrawOps(args []string) ([]drawOp, error) {
	var ops []drawOp
	for len(args) > 0 {
		kind, err := shape.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		args = args[1:]
		op := drawOp{kind: kind}
		if kind == shape.Text {
			if len(args) < 3 {
				return nil, fmt.Errorf("text requires X Y LABEL")
			}
			nums, err := expectFloats(args[:2], "text")
			if err != nil {
				return nil, err
			}
			op.from = shape.Pt(nums[0], nums[1])
			op.to = op.from
			op.label = args[2]
			args = args[3:]
		} else {
			if len(args) < 4 {
				return nil, fmt.Errorf("%s requires 4 numeric arguments", kind)
			}
			nums, err := expectFloats(args[:4], kind.String())
			if err != nil {
				return nil, err
			}
			op.from = shape.Pt(nums[0], nums[1])
			op.to = shape.Pt(nums[2], nums[3])
			args = args[4:]
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func expectFloats(args []string, name string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", name, raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) Run() error {
	ctx := context.Background()
	blob, _, err := d.source.read(ctx)
	if err != nil {
		return err
	}

	var labels interact.Pending
	ed, stop := d.startEditor(ctx, editor.WithPrompter(&labels))
	defer stop()
	if err := ed.Load(ctx, blob); err != nil {
		return err
	}
	for _, op := range d.ops {
		if op.kind == shape.Text {
			labels.Offer(op.label)
		}
		ed.Select(op.kind)
		ed.PointerDown(op.from)
		ed.PointerUp(op.to)
	}
	img, err := ed.Export(ctx)
	if err != nil {
		return err
	}

	x := d.newExporter()
	output := d.output
	if output == "" {
		output = d.source.file
	}
	switch output {
	case "":
	case "-":
		if err := x.ToWriter(d.stdout, img); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
	default:
		if _, err := x.ToFile(img, output); err != nil {
			return err
		}
	}
	if d.toClipboard {
		if err := x.ToClipboard(img); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/example/shotmark/internal/config"
)

type configCmd struct {
	*root
	fs   *flag.FlagSet
	path string
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.path, "path", "", "file written by save (defaults to the loaded config file)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective is the loaded config with this invocation's flags applied.
func (c *configCmd) effective() *config.Config {
	cfg := *c.root.config
	cfg.Theme = c.themeName
	cfg.SaveDir = c.saveDir
	cfg.FrameRate = c.frameRate
	cfg.ClearOnLoad = c.clearOnLoad
	cfg.Notify = config.Notify{Export: c.exportAlert, Copy: c.copyAlert}
	cfg.Export = config.Export{Shadow: c.shadow, Format: c.format}
	return &cfg
}

func (c *configCmd) runPrint() error {
	_, err := fmt.Fprint(c.stdout, c.effective().String())
	return err
}

func (c *configCmd) runSave() error {
	path := c.path
	if path == "" {
		path = config.NewLoader(version, configPathOverride).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New("no config path: set -path")
	}
	if err := c.effective().Save(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}

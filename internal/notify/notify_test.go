package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/shotmark/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title: title, body: body, opts: opts, iconExisted: opts.IconPath != "" && err == nil})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledByDefault(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Export("out.png", nil)
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Export("x.png", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
}

func TestExportUsesPNGAsIcon(t *testing.T) {
	got := capture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export(path, nil)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.opts.IconPath != path || !strings.Contains(s.body, path) {
		t.Fatalf("notification %+v", s)
	}
}

func TestCopyPreviewIsTemporary(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if !s.iconExisted {
		t.Fatal("preview missing while notification was sent")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not removed: %v", err)
	}
	if s.body != "Copied image to clipboard" {
		t.Fatalf("body %q", s.body)
	}
}

func TestLoadPreferences(t *testing.T) {
	env := map[string]string{
		"SHOTMARK_NOTIFY_TITLE":       "Marks",
		"SHOTMARK_NOTIFY_EXPORT_TEXT": "Wrote %s",
	}
	p := LoadPreferences(func(k string) string { return env[k] })
	if p.Title != "Marks" || p.Events[EventExport].Template != "Wrote %s" {
		t.Fatalf("prefs %+v", p)
	}
	if p.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Fatal("unset override changed copy template")
	}
}

package decode

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pngBytes(t *testing.T, r image.Rectangle) []byte {
	t.Helper()
	img := image.NewNRGBA(r)
	img.Set(r.Min.X, r.Min.Y, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestCheckRejectsNonImage(t *testing.T) {
	for _, typ := range []string{"text/plain", "", "application/octet-stream"} {
		if err := Check(Blob{Type: typ}); !errors.Is(err, ErrInvalidPasteType) {
			t.Errorf("Check(%q) = %v, want ErrInvalidPasteType", typ, err)
		}
	}
	if err := Check(Blob{Type: "image/png"}); err != nil {
		t.Errorf("Check(image/png) = %v", err)
	}
}

func TestDecodePNG(t *testing.T) {
	img, format, err := Decode(Blob{Data: pngBytes(t, image.Rect(0, 0, 8, 6)), Type: "image/png"})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format %q", format)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Errorf("pixel %+v", got)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	_, _, err := Decode(Blob{Data: []byte("nope"), Type: "image/png"})
	if err == nil || errors.Is(err, ErrInvalidPasteType) {
		t.Fatalf("expected decode failure, got %v", err)
	}
}

func TestAsyncDelivers(t *testing.T) {
	done := make(chan Result, 1)
	Async(context.Background(), Blob{Data: pngBytes(t, image.Rect(0, 0, 3, 3)), Type: "image/png"}, func(r Result) {
		done <- r
	})
	select {
	case r := <-done:
		if r.Err != nil || r.Image == nil {
			t.Fatalf("result %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for decode")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	named := filepath.Join(dir, "shot.PNG")
	if err := os.WriteFile(named, pngBytes(t, image.Rect(0, 0, 2, 2)), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := FromFile(named)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if b.Type != "image/png" {
		t.Errorf("type %q", b.Type)
	}

	sniffed := filepath.Join(dir, "shot")
	if err := os.WriteFile(sniffed, pngBytes(t, image.Rect(0, 0, 2, 2)), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err = FromFile(sniffed)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if b.Type != "image/png" {
		t.Errorf("sniffed type %q", b.Type)
	}

	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err = FromFile(notes)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if err := Check(b); !errors.Is(err, ErrInvalidPasteType) {
		t.Errorf("text file passed check: %v", err)
	}
}

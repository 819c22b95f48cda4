package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/invcolors"
	"github.com/gogpu/invcolors/settings"
)

func runCmd(t *testing.T, store *settings.FileStore, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(&buf, store, args[0], args[1:])
	return buf.String(), err
}

func TestRun_SetGetReset(t *testing.T) {
	store := settings.Open(t.TempDir())

	out, err := runCmd(t, store, "set", "com.example", "red", "#0000FF")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(out, "#FFFF0000") || !strings.Contains(out, "#FF0000FF") {
		t.Errorf("set output = %q", out)
	}

	out, err = runCmd(t, store, "get", "com.example")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "com.example") || strings.Contains(out, "(default)") {
		t.Errorf("get output = %q", out)
	}

	out, err = runCmd(t, store, "reset", "com.example")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(default)") {
		t.Errorf("reset output = %q", out)
	}
}

func TestRun_Errors(t *testing.T) {
	store := settings.Open(t.TempDir())
	tests := [][]string{
		{"get"},
		{"set", "com.example", "red"},
		{"set", "com.example", "red", "nocolor"},
		{"matrix", "red"},
		{"reset"},
		{"frobnicate"},
	}
	for _, args := range tests {
		if _, err := runCmd(t, store, args...); err == nil {
			t.Errorf("run(%v) succeeded, want error", args)
		}
	}
}

func TestRun_Matrix(t *testing.T) {
	out, err := runCmd(t, settings.Open(t.TempDir()), "matrix", "white", "black")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, invcolors.Inversion().String()) {
		t.Errorf("matrix output = %q", out)
	}
}

func TestRun_PresetsAndList(t *testing.T) {
	store := settings.Open(t.TempDir())
	out, err := runCmd(t, store, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range invcolors.Presets {
		if !strings.Contains(out, p.DisplayName()) {
			t.Errorf("presets output lacks %s", p.DisplayName())
		}
	}

	_ = store.Save("com.example", invcolors.Red, invcolors.Blue)
	_ = store.MarkHooked("com.hooked")
	out, err = runCmd(t, store, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Configured", "com.example", "Hooked", "com.hooked"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output lacks %q:\n%s", want, out)
		}
	}
}

func writeSolid(t *testing.T, path string, c color.NRGBA, w, h int, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRun_Render(t *testing.T) {
	dir := t.TempDir()
	store := settings.Open(filepath.Join(dir, "settings"))
	_ = store.Save("com.example", invcolors.White, invcolors.Blue)

	in := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")
	writeSolid(t, in, color.NRGBA{255, 255, 255, 255}, 3, 2,
		func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	out, err := runCmd(t, store, "render", "-pkg", "com.example", "-in", in, "-out", outPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "3x2") {
		t.Errorf("render output = %q", out)
	}

	img := readPNG(t, outPath)
	if got := invcolors.FromColor(img.At(1, 1)); got != invcolors.Blue {
		t.Errorf("rendered pixel = %s, want blue", got)
	}
	if hooked := store.HookedPackages(); len(hooked) != 0 {
		t.Errorf("render recorded hooked packages: %v", hooked)
	}
}

func TestRun_RenderScaledBMP(t *testing.T) {
	dir := t.TempDir()
	store := settings.Open(dir)

	in := filepath.Join(dir, "in.bmp")
	outPath := filepath.Join(dir, "out.png")
	writeSolid(t, in, color.NRGBA{0, 0, 0, 255}, 2, 2,
		func(f *os.File, img image.Image) error { return bmp.Encode(f, img) })

	if _, err := runCmd(t, store, "render", "-pkg", "com.example", "-in", in, "-out", outPath,
		"-width", "6", "-height", "4"); err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readPNG(t, outPath)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("output size = %v, want 6x4", b)
	}
	// Default colors invert black to white.
	got := invcolors.FromColor(img.At(3, 2))
	if got.R() < 254 || got.G() < 254 || got.B() < 254 || got.A() < 254 {
		t.Errorf("rendered pixel = %s, want white", got)
	}
}

func TestRun_RenderErrors(t *testing.T) {
	dir := t.TempDir()
	store := settings.Open(dir)

	if _, err := runCmd(t, store, "render", "-pkg", "com.example"); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("missing -in = %v, want flag.ErrHelp", err)
	}
	if _, err := runCmd(t, store, "render", "-pkg", "com.example", "-in", filepath.Join(dir, "none.png")); err == nil {
		t.Error("missing input should fail")
	}

	bad := filepath.Join(dir, "bad.png")
	_ = os.WriteFile(bad, []byte("not an image"), 0o644)
	if _, err := runCmd(t, store, "render", "-pkg", "com.example", "-in", bad); err == nil {
		t.Error("undecodable input should fail")
	}

	in := filepath.Join(dir, "in.png")
	writeSolid(t, in, color.NRGBA{255, 255, 255, 255}, 1, 1,
		func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	if _, err := runCmd(t, store, "render", "-pkg", invcolors.PlatformPackage, "-in", in,
		"-out", filepath.Join(dir, "o.png")); !errors.Is(err, invcolors.ErrExcluded) {
		t.Errorf("excluded package = %v, want ErrExcluded", err)
	}
}

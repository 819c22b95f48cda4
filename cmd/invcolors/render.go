package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/invcolors"
	"github.com/gogpu/invcolors/softhost"
)

// loadFunc adapts a function to invcolors.SettingsLoader.
type loadFunc func(pkg string) invcolors.Entry

func (f loadFunc) Load(pkg string) invcolors.Entry { return f(pkg) }

// render binds a package on the software host and draws the input image as
// the content of its window, so the output is what the target would show.
func render(w io.Writer, loader invcolors.SettingsLoader, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var (
		pkg    = fs.String("pkg", "", "package whose colors to apply (required)")
		in     = fs.String("in", "", "input image: png, jpeg, gif, bmp, tiff or webp (required)")
		out    = fs.String("out", "out.png", "output PNG file")
		width  = fs.Int("width", 0, "window width (default: input width)")
		height = fs.Int("height", 0, "window height (default: input height)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pkg == "" || *in == "" {
		fs.Usage()
		return flag.ErrHelp
	}

	src, err := decodeImage(*in)
	if err != nil {
		return err
	}
	b := src.Bounds()
	if *width <= 0 {
		*width = b.Dx()
	}
	if *height <= 0 {
		*height = b.Dy()
	}
	content := scale(src, *width, *height)

	host := softhost.NewHost()
	inst := invcolors.NewInstaller(loader, invcolors.WithSelfPackage(""))
	binding, err := inst.OnPackageLoaded(*pkg, host)
	if err != nil {
		return err
	}

	window := softhost.NewWindow(host, *width, *height)
	window.OnDraw = func(c *softhost.Canvas, _ *softhost.View) {
		c.DrawImage(content, 0, 0)
	}

	canvas := softhost.NewCanvas(*width, *height)
	window.Draw(canvas)

	if err := canvas.Surface().SavePNG(*out); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(w, "%s: %s -> %s, wrote %s (%dx%d)\n",
		binding.Package(), binding.Entry.Source, binding.Entry.Target, *out, *width, *height)
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, errors.New("decode " + path + ": empty image")
	}
	return img, nil
}

// scale resizes img to width x height, returning it unchanged when the
// size already matches.
func scale(img image.Image, width, height int) image.Image {
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

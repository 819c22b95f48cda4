// Command invcolors manages per-application color settings and previews
// the remapping on images.
//
// Usage:
//
//	invcolors [-settings DIR] [-v] <command> [arguments]
//
// Commands:
//
//	get PKG              show the colors of a package
//	set PKG SRC DST      store the colors of a package
//	reset PKG            restore the default colors of a package
//	list                 list configured and hooked packages
//	matrix SRC DST       print the color matrix for a color pair
//	presets              list the named colors
//	render [flags]       remap an image as a bound window would draw it
//
// Colors are preset names (white, gray, red, ...), #RGB, #RRGGBB,
// #AARRGGBB or 0xAARRGGBB.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/invcolors"
	"github.com/gogpu/invcolors/settings"
)

// settingsDirEnv overrides the default settings directory.
const settingsDirEnv = "INVCOLORS_SETTINGS_DIR"

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("invcolors: ")

	var (
		dir     = flag.String("settings", defaultSettingsDir(), "settings directory")
		verbose = flag.Bool("v", false, "log diagnostics to stderr")
	)
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		invcolors.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	store := settings.Open(*dir, settings.WithChannel(invcolors.NewChannel(nil)))
	if err := run(os.Stdout, store, flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: invcolors [flags] <get|set|reset|list|matrix|presets|render> [arguments]\n")
	flag.PrintDefaults()
}

func defaultSettingsDir() string {
	if dir := os.Getenv(settingsDirEnv); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "invcolors")
	}
	return "."
}

func run(w io.Writer, store *settings.FileStore, cmd string, args []string) error {
	switch cmd {
	case "get":
		if len(args) != 1 {
			return errors.New("usage: get PKG")
		}
		printEntry(w, store.Load(args[0]))
		return nil

	case "set":
		if len(args) != 3 {
			return errors.New("usage: set PKG SRC DST")
		}
		src, err := invcolors.ParseColor(args[1])
		if err != nil {
			return err
		}
		dst, err := invcolors.ParseColor(args[2])
		if err != nil {
			return err
		}
		if err := store.Save(args[0], src, dst); err != nil {
			return err
		}
		printEntry(w, store.Load(args[0]))
		return nil

	case "reset":
		if len(args) != 1 {
			return errors.New("usage: reset PKG")
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		printEntry(w, store.Load(args[0]))
		return nil

	case "list":
		return list(w, store)

	case "matrix":
		if len(args) != 2 {
			return errors.New("usage: matrix SRC DST")
		}
		src, err := invcolors.ParseColor(args[0])
		if err != nil {
			return err
		}
		dst, err := invcolors.ParseColor(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s -> %s %s\n", swatch(src), src, swatch(dst), dst)
		fmt.Fprintln(w, invcolors.Build(src, dst))
		return nil

	case "presets":
		for _, p := range invcolors.Presets {
			fmt.Fprintf(w, "%s %-8s %s\n", swatch(p.Color), p.DisplayName(), mutedStyle.Render(p.Color.Hex()))
		}
		return nil

	case "render":
		// A preview must not record the package as hooked.
		return render(w, loadFunc(store.Load), args)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func list(w io.Writer, store *settings.FileStore) error {
	entries := store.Entries()
	hooked := store.HookedPackages()

	fmt.Fprintln(w, labelStyle.Render("Configured"))
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
	}
	for _, e := range entries {
		fmt.Fprint(w, "  ")
		printEntry(w, e)
	}

	fmt.Fprintln(w, labelStyle.Render("Hooked"))
	if len(hooked) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
	}
	for _, pkg := range hooked {
		fmt.Fprintf(w, "  %s\n", pkg)
	}
	return nil
}

func printEntry(w io.Writer, e invcolors.Entry) {
	note := ""
	if e.IsDefault() {
		note = mutedStyle.Render(" (default)")
	}
	fmt.Fprintf(w, "%s %s %s -> %s %s  contrast %.1f:1%s\n",
		e.Package,
		swatch(e.Source), e.Source,
		swatch(e.Target), e.Target,
		invcolors.Contrast(e.Source, e.Target),
		note)
}

func swatch(c invcolors.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(strings.ToLower(c.RGBHex()))).
		Render("    ")
}

// Command zplpreview renders a ZPL II source file to a PNG, for
// quickly eyeballing a label during development. It is a thin
// demonstration harness around pkg/zpl — no server, no persisted
// state; its flags are the label geometry, the output path and an
// optional config file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"zplrender/internal/config"
	"zplrender/internal/logging"
	"zplrender/pkg/zpl"
)

func main() {
	var (
		width   = flag.Int("width", 0, "label width in dots (overrides config default)")
		height  = flag.Int("height", 0, "label height in dots (overrides config default)")
		dpi     = flag.Int("dpi", 0, "informational DPI (overrides config default)")
		out     = flag.String("out", "", "PNG output path (required)")
		cfgPath = flag.String("config", "", "path to a config file (optional)")
	)
	flag.Parse()

	if flag.NArg() != 1 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: zplpreview [-width N] [-height N] [-dpi N] -out FILE.png SOURCE.zpl")
		os.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "zplpreview: loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zplpreview: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Sugar().Fatalw("reading source", "error", err)
	}

	w, h, dotsPerInch := *width, *height, *dpi
	if w <= 0 {
		w = cfg.Printer.PrintWidthDots
	}
	if h <= 0 {
		h = cfg.Printer.LabelLengthDots
	}
	if dotsPerInch <= 0 {
		dotsPerInch = cfg.Printer.DPI
	}

	rl := logging.NewRenderLogger(logger)
	rl.Start(len(src))

	opts := zpl.DefaultOptions()
	opts.DPI = dotsPerInch
	opts.Profile = &cfg.Printer

	bmp, warnings, err := zpl.Render(string(src), w, h, opts)
	if err != nil {
		rl.Failure(err)
		os.Exit(1)
	}
	for _, wr := range warnings {
		rl.Warning(wr)
	}

	f, err := os.Create(*out)
	if err != nil {
		rl.Failure(err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, bmp.Image()); err != nil {
		rl.Failure(err)
		os.Exit(1)
	}

	lbl, _ := zpl.Parse(string(src))
	rl.Success(len(lbl.Elements), len(warnings))
}

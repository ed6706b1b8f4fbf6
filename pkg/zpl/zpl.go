// Package zpl is the public entry point: render ZPL II source to a
// bitmap, parse it into a structural Label, or validate it without
// drawing anything. No persisted state, no environment variables, no
// CLI — every exported function is a pure function of its arguments
// (spec §5/§6).
package zpl

import (
	"fmt"
	"image/png"
	"os"

	"go.uber.org/zap"

	"zplrender/internal/canvas"
	"zplrender/internal/command"
	"zplrender/internal/config"
	"zplrender/internal/label"
	"zplrender/internal/logging"
	"zplrender/internal/raster"
	"zplrender/internal/rendererr"
	"zplrender/internal/state"
	"zplrender/internal/symbol"
	"zplrender/internal/units"
	"zplrender/internal/validate"
)

// Color is the two-tone-or-RGBA palette a Bitmap is drawn in.
type Color = canvas.Color

// White and Black are the two colors ZPL itself ever asks for; a
// Canvas backend may support more for the background fill.
var (
	White = canvas.White
	Black = canvas.Black
)

// Bitmap is a rendered label: a pixel image plus the drawing context
// that produced it.
type Bitmap = canvas.Bitmap

// Label is the parse product: parsed commands plus label-level
// attributes, without rasterizing anything.
type Label = label.Label

// RenderOptions configures a single Render call.
type RenderOptions struct {
	// DPI is informational only — this engine renders 1 source dot to
	// 1 destination pixel regardless of DPI (spec §9's resolved
	// coordinate-scaling question); DPI only matters to RenderMM and
	// RenderInches, which use it to convert physical units to dots.
	DPI int
	// Background is the bitmap's fill color before any element is
	// drawn. The zero Color is treated as White, the documented
	// default that DefaultOptions also sets.
	Background Color
	// Profile optionally supplies a printer profile's font-substitution
	// table and parameter-clamp overrides (spec §10.1). Nil uses
	// config.Default().Printer, whose neutral Darkness (15) and
	// generous MaxModuleWidth (10) leave rendering unaffected unless a
	// caller's profile narrows them.
	Profile *config.PrinterConfig
}

// DefaultOptions returns the documented defaults: 203 DPI, white
// background.
func DefaultOptions() RenderOptions {
	return RenderOptions{DPI: 203, Background: canvas.White}
}

// nopBase is the zap.NewNop()-backed logger every Render call mints its
// own RenderLogger from. Render always logs through it, so its log
// lines are discarded; RenderOptions offers no way to attach another
// sink, and a caller that wants render logs (e.g. cmd/zplpreview)
// builds and feeds its own RenderLogger.
var nopBase = zap.NewNop()

// Render interprets source and rasterizes it onto a widthDots x
// heightDots bitmap. An empty source yields a background-filled
// bitmap of the requested size rather than an error (spec §7's
// FatalInput handling); only non-positive dimensions fail the call.
func Render(source string, widthDots, heightDots int, opts RenderOptions) (Bitmap, []*rendererr.Warning, error) {
	rl := logging.NewRenderLogger(nopBase)
	rl.Start(len(source))

	if widthDots <= 0 || heightDots <= 0 {
		err := rendererr.ErrInvalidDimensions
		rl.Failure(err)
		return nil, nil, err
	}

	st := state.New()
	st.PrintWidthDots = widthDots
	st.LabelLengthDots = heightDots

	var warnings []*rendererr.Warning
	if source != "" {
		warnings = command.Run(source, st)
	}

	profile := opts.Profile
	if profile == nil {
		profile = &config.Default().Printer
	}

	r := raster.New(canvas.New(), canvas.DefaultResolver(), symbol.New())
	r.FontOverrides = profile.FontOverrides
	r.MaxModuleWidth = profile.MaxModuleWidth
	r.Darkness = profile.Darkness

	warn := func(kind rendererr.WarningKind, detail string) {
		warnings = append(warnings, rendererr.New(kind, -1, detail))
	}

	bg := opts.Background
	if bg == (Color{}) {
		bg = canvas.White
	}

	bmp, err := r.Rasterize(st.Elements, widthDots, heightDots, bg, st.PrintOrientation == state.PrintInverted, warn)
	if err != nil {
		rl.Failure(err)
		return nil, warnings, err
	}

	for _, w := range warnings {
		rl.Warning(w)
	}
	rl.Success(len(st.Elements), len(warnings))
	return bmp, warnings, nil
}

// RenderMM is Render with a physical label size in millimeters,
// converted to dots via dpi (dots = mm * dpi / 25.4).
func RenderMM(source string, widthMM, heightMM float64, dpi int, opts RenderOptions) (Bitmap, []*rendererr.Warning, error) {
	if dpi <= 0 {
		dpi = 203
	}
	w := units.DotsFromMM(widthMM, dpi)
	h := units.DotsFromMM(heightMM, dpi)
	return Render(source, w, h, opts)
}

// RenderInches is Render with a physical label size in inches,
// converted to dots via dpi (dots = inches * dpi).
func RenderInches(source string, widthIn, heightIn float64, dpi int, opts RenderOptions) (Bitmap, []*rendererr.Warning, error) {
	if dpi <= 0 {
		dpi = 203
	}
	w := units.DotsFromInches(widthIn, dpi)
	h := units.DotsFromInches(heightIn, dpi)
	return Render(source, w, h, opts)
}

// Parse tokenizes and executes source, returning the parsed command
// sequence, label-level attributes, and produced elements without
// rasterizing anything.
func Parse(source string) (*Label, []*rendererr.Warning) {
	return label.Parse(source)
}

// Validate structurally checks source (balanced ^XA/^XZ, every code
// recognized) without executing it. An empty result means valid.
func Validate(source string) []string {
	return validate.Messages(source)
}

// RenderToFile renders source and PNG-encodes the result to path.
func RenderToFile(source, path string, widthDots, heightDots int, opts RenderOptions) error {
	bmp, _, err := Render(source, widthDots, heightDots, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("zpl: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, bmp.Image()); err != nil {
		return fmt.Errorf("zpl: encoding %s as PNG: %w", path, err)
	}
	return nil
}

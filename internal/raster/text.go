package raster

import (
	"strings"

	"zplrender/internal/canvas"
	"zplrender/internal/element"
	"zplrender/internal/font"
	"zplrender/internal/rendererr"
)

// drawText renders a Text element: resolves its font class and pixel
// face, lays out one or more lines (wrapped/aligned/truncated per an
// in-effect ^FB block, or drawn verbatim as a single line otherwise),
// and draws each line at its baseline, optionally behind a filled
// reverse-print backing rectangle.
func (r *Rasterizer) drawText(ctx canvas.Context, t *element.Text, warn Warn) {
	cls := font.Lookup(t.FontID)
	heightDots := t.FontHeightDots
	if heightDots <= 0 {
		heightDots = 9
	}

	family := cls.Family
	if override, ok := r.FontOverrides[t.FontID]; ok && override != "" {
		family = override
	}

	face, err := resolveFaceForHeight(r.Fonts, family, cls.Bold, float64(heightDots))
	if err != nil {
		warn(rendererr.KindRenderFailure, "text: "+err.Error())
		return
	}
	ascent, _, lineHeight := face.Metrics()
	hScale := font.EffectiveWidth(t.FontID, heightDots, t.FontWidthDots)
	if hScale <= 0 {
		hScale = 1
	}

	lines := layoutLines(t.Content, t.Block, face, hScale)

	if t.Block != nil && t.Block.LineSpace > 0 {
		lineHeight += float64(t.Block.LineSpace)
	}

	baselineY := ascent
	if t.Anchor.Origin == element.Baseline {
		baselineY = 0
	}

	col := canvas.Black
	if t.Anchor.Reverse {
		col = canvas.White
	}

	for i, line := range lines {
		lw := face.MeasureString(line) * hScale
		x := lineOffsetX(t.Block, i, lw)
		y := baselineY + float64(i)*lineHeight

		if t.Anchor.Reverse {
			ctx.FillRect(x, y-ascent, lw, lineHeight, oppositeColor(col))
		}

		ctx.Save()
		ctx.Translate(x, y)
		ctx.Scale(hScale, 1)
		ctx.DrawText(line, 0, 0, face, col)
		ctx.Restore()
	}
}

// resolveFaceForHeight picks a pixel size for the underlying face such
// that its visible cell (ascent+descent) matches heightDots, since a
// font's nominal point size and its rendered glyph cell rarely agree.
func resolveFaceForHeight(resolver canvas.FontResolver, family string, bold bool, heightDots float64) (canvas.Face, error) {
	face, err := resolver.Resolve(family, bold, heightDots)
	if err != nil {
		return nil, err
	}
	ascent, descent, _ := face.Metrics()
	cell := ascent + descent
	if cell <= 0 {
		return face, nil
	}
	adjusted := heightDots * heightDots / cell
	if better, err := resolver.Resolve(family, bold, adjusted); err == nil {
		return better, nil
	}
	return face, nil
}

// layoutLines splits content into display lines. Without a field
// block in effect, content is drawn verbatim as a single line. With a
// block, explicit "\n" and literal "\&" sequences force a break, text
// is otherwise greedily word-wrapped to the block's width, and the
// result is truncated to the block's max line count.
func layoutLines(content string, block *element.FieldBlock, face canvas.Face, hScale float64) []string {
	if block == nil {
		return []string{content}
	}

	raw := strings.Split(strings.ReplaceAll(content, "\\&", "\n"), "\n")

	var lines []string
	for _, part := range raw {
		lines = append(lines, wordWrap(part, block.Width, face, hScale)...)
		if block.MaxLines > 0 && len(lines) >= block.MaxLines {
			break
		}
	}

	maxLines := block.MaxLines
	if maxLines <= 0 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// wordWrap greedily packs words into lines no wider than widthDots,
// measuring each candidate line with the resolved face so wrapping
// reflects actual glyph metrics rather than a character count.
func wordWrap(s string, widthDots int, face canvas.Face, hScale float64) []string {
	if widthDots <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	fits := func(line string) bool {
		return face.MeasureString(line)*hScale <= float64(widthDots)
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if fits(candidate) {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	lines = append(lines, cur)
	return lines
}

func lineOffsetX(block *element.FieldBlock, index int, lineWidth float64) float64 {
	if block == nil {
		return 0
	}
	x := 0.0
	switch block.Alignment {
	case element.AlignCenter:
		x = (float64(block.Width) - lineWidth) / 2
	case element.AlignRight:
		x = float64(block.Width) - lineWidth
	default: // Left and Justify (fallback) both start at the left edge.
		x = 0
	}
	if index > 0 {
		x += float64(block.Indent)
	}
	if x < 0 {
		x = 0
	}
	return x
}

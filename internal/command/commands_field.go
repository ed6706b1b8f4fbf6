package command

import (
	"zplrender/internal/element"
)

func alignmentFromChar(c rune) element.Alignment {
	switch c {
	case 'C':
		return element.AlignCenter
	case 'R':
		return element.AlignRight
	case 'J':
		return element.AlignJustify
	default:
		return element.AlignLeft
	}
}

func init() {
	// ^FB w,l,s,j,i: field block. Wraps the following field's text to
	// width w dots, at most l lines, with s dots of inter-line spacing,
	// justification j and i dots of indent on lines after the first.
	register("FB", func(payload string) Command {
		params := splitParams(payload)
		w := intField(params, 0, 0)
		l := intField(params, 1, 1)
		s := intField(params, 2, 0)
		j := alignmentFromChar(charField(params, 3, 'L'))
		ind := intField(params, 4, 0)
		return funcCommand(func(ctx *Context) {
			if w <= 0 {
				return
			}
			if l <= 0 {
				l = 1
			}
			ctx.State.Field.Block = &element.FieldBlock{
				Width:     w,
				MaxLines:  l,
				Alignment: j,
				LineSpace: s,
				Indent:    ind,
			}
		})
	})

	// ^FR: reverse print the field that follows (white on black).
	register("FR", func(payload string) Command {
		return funcCommand(func(ctx *Context) {
			ctx.State.Field.Reverse = true
		})
	})

	// ^FH[ind]: the field data that follows may contain _xx hex escapes
	// using ind (default '_') as the escape indicator.
	register("FH", func(payload string) Command {
		ind := byte('_')
		if len(payload) > 0 {
			ind = payload[0]
		}
		return funcCommand(func(ctx *Context) {
			ctx.State.Field.HexIndicator = string(ind)
		})
	})

	// ^FX ...: comment, consumed by the tokenizer up to the next
	// command prefix. Nothing to execute.
	register("FX", func(payload string) Command {
		return funcCommand(func(ctx *Context) {})
	})

	fieldData := func(payload string) Command {
		return funcCommand(func(ctx *Context) {
			content := payload
			if ctx.State.Field.HexIndicator != "" {
				content = decodeHex(content, ctx.State.Field.HexIndicator[0])
			}

			if pb := ctx.State.Field.PendingBarcode; pb != nil {
				if pb.Kind == element.BarcodeQR {
					content = stripQRPrefix(content)
				}
				x, y := ctx.State.Anchor()
				ctx.State.Emit(element.FromBarcode(&element.Barcode{
					Anchor: element.Anchor{
						X:      x,
						Y:      y,
						Origin: ctx.State.OriginMode,
					},
					Kind:               pb.Kind,
					Content:            content,
					ModuleWidth:        pb.ModuleWidth,
					ModuleRatio:        pb.ModuleRatio,
					BarHeight:          pb.BarHeight,
					Orientation:        pb.Orientation,
					Interpretation:     pb.Interpretation,
					ErrorCorrection:    pb.ErrorCorrection,
					QRModel:            pb.QRModel,
					QRMagnification:    pb.QRMagnification,
					AztecMagnification: pb.AztecMagnification,
				}))
				ctx.State.Field.PendingBarcode = nil
				return
			}

			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromText(&element.Text{
				Anchor: element.Anchor{
					X:       x,
					Y:       y,
					Origin:  ctx.State.OriginMode,
					Reverse: ctx.State.Field.Reverse,
				},
				Content:        content,
				FontID:         ctx.State.DefaultFont.ID,
				FontHeightDots: ctx.State.DefaultFont.HeightDots,
				FontWidthDots:  ctx.State.DefaultFont.WidthDots,
				Orientation:    ctx.State.DefaultFont.Orientation,
				Block:          ctx.State.Field.Block,
			}))
		})
	}

	// ^FD, ^SN and ^FV all carry the field's literal content through to
	// ^FS; this renderer treats serialization (^SN) and variable (^FV)
	// data the same as ordinary field data since no stored-format state
	// exists to distinguish them against.
	register("FD", fieldData)
	register("SN", fieldData)
	register("FV", fieldData)
}

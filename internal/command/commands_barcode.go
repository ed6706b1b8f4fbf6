package command

import (
	"zplrender/internal/element"
	"zplrender/internal/state"
)

// stageBarcode builds a Factory for a ^Bxx command that stages a
// PendingBarcode descriptor, to be consumed by the ^FD/^SN/^FV that
// follows (spec §3 invariant (b)). orient/height/width/ratio apply the
// ^BY-configured defaults as fallbacks wherever the command's own
// payload omits that parameter.
func stageBarcode(kind element.BarcodeKind, build func(params []string, defaults state.BarcodeDefaults) state.PendingBarcode) Factory {
	return func(payload string) Command {
		params := splitParams(payload)
		return funcCommand(func(ctx *Context) {
			pb := build(params, ctx.State.Barcode)
			pb.Kind = kind
			ctx.State.Field.PendingBarcode = &pb
		})
	}
}

func init() {
	// ^BY w,r,h: set the barcode field defaults every subsequent ^Bxx
	// inherits unless it overrides them.
	register("BY", func(payload string) Command {
		params := splitParams(payload)
		w := intField(params, 0, 2)
		r := floatField(params, 1, 3.0)
		h := intField(params, 2, 10)
		return funcCommand(func(ctx *Context) {
			ctx.State.Barcode = state.BarcodeDefaults{
				ModuleWidth: clampInt(w, 1, 10),
				Ratio:       clampFloat(r, 2.0, 3.0),
				Height:      h,
			}
		})
	})

	oneD := func(params []string, d state.BarcodeDefaults) state.PendingBarcode {
		orient := orientationFromChar(charField(params, 0, 'N'))
		interp := element.InterpretationOff
		if charField(params, 1, 'Y') == 'Y' {
			interp = element.InterpretationBelow
		}
		h := intField(params, 3, d.Height)
		return state.PendingBarcode{
			Orientation:     orient,
			BarHeight:       h,
			ModuleWidth:     d.ModuleWidth,
			ModuleRatio:     d.Ratio,
			Interpretation:  interp,
		}
	}

	// ^BC: Code 128.
	register("BC", stageBarcode(element.BarcodeCode128, oneD))
	// ^B3: Code 39.
	register("B3", stageBarcode(element.BarcodeCode39, oneD))
	// ^BE: EAN-13.
	register("BE", stageBarcode(element.BarcodeEAN13, oneD))
	// ^B7: Code 93 (bidirectional variant letter reused from Code 39's
	// param grammar).
	register("B7", stageBarcode(element.BarcodeCode93, oneD))
	// ^B0 (a.k.a ^BU): UPC-A.
	register("BU", stageBarcode(element.BarcodeUPCA, oneD))
	register("B0", stageBarcode(element.BarcodeUPCA, oneD))
	// ^BI / ^B2: Interleaved 2 of 5.
	register("B2", stageBarcode(element.BarcodeITF, oneD))
	// ^BK: Codabar.
	register("BK", stageBarcode(element.BarcodeCodabar, oneD))

	// ^BQ a,b,c: QR Code. a=field orientation (ignored by QR itself,
	// kept for symmetry), b=model (1 or 2), c=magnification. The
	// magnification factor doubles as the symbol's module width, the
	// same way ^BY's w parameter does for 1D symbologies.
	register("BQ", stageBarcode(element.BarcodeQR, func(params []string, d state.BarcodeDefaults) state.PendingBarcode {
		model := intField(params, 1, 2)
		mag := intField(params, 2, 3)
		mag = clampInt(mag, 1, 10)
		return state.PendingBarcode{
			QRModel:         clampInt(model, 1, 2),
			QRMagnification: mag,
			ModuleWidth:     mag,
			ErrorCorrection: element.ECMedium,
		}
	}))

	// ^BX orientation,dim,...: Data Matrix.
	register("BX", stageBarcode(element.BarcodeDataMatrix, func(params []string, d state.BarcodeDefaults) state.PendingBarcode {
		orient := orientationFromChar(charField(params, 0, 'N'))
		return state.PendingBarcode{Orientation: orient}
	}))

	// ^B7 above covers Code 93; ^BA: PDF417.
	register("BA", stageBarcode(element.BarcodePDF417, func(params []string, d state.BarcodeDefaults) state.PendingBarcode {
		orient := orientationFromChar(charField(params, 0, 'N'))
		h := intField(params, 2, d.Height)
		return state.PendingBarcode{Orientation: orient, BarHeight: h, ModuleWidth: d.ModuleWidth}
	}))

	// ^BD: Aztec (ZPL's ^B7/^BO letters vary by firmware; this
	// implementation reserves ^BD for Aztec with a magnification param).
	register("BD", stageBarcode(element.BarcodeAztec, func(params []string, d state.BarcodeDefaults) state.PendingBarcode {
		mag := intField(params, 1, 3)
		return state.PendingBarcode{AztecMagnification: clampInt(mag, 1, 10)}
	}))

	// ^BM: MaxiCode. Staged like any other symbology; the symbol
	// backend is the layer that reports it unsupported (spec §6/§7),
	// keeping that decision out of the command layer.
	register("BM", stageBarcode(element.BarcodeMaxiCode, oneD))
}

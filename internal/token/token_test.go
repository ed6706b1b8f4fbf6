package token

import "testing"

// Token coverage invariant (spec §8 #1): every byte of the source is
// accounted for by exactly one token's raw span, in order, with no
// gaps or overlaps.
func TestAllCoversEntireSource(t *testing.T) {
	source := "^XA^FO50,50^A0N,30,30^FDHello World^FS^BY2^BCN,100,Y^FD123456^FS^XZ"

	toks, _ := All(source)
	if len(toks) == 0 {
		t.Fatal("expected at least one token")
	}

	pos := 0
	for i, tok := range toks {
		if tok.SourceOffset != pos {
			t.Fatalf("token %d (%s) starts at %d, want %d (gap or overlap)", i, tok.Code, tok.SourceOffset, pos)
		}
		pos += tok.Length
	}
	if pos != len(source) {
		t.Fatalf("tokens cover %d bytes, source is %d bytes", pos, len(source))
	}
}

// FD literal rule invariant (spec §8 #2): field data runs verbatim up
// to the next ^FS, including characters that would otherwise start a
// new command elsewhere in the source.
func TestFieldDataPayloadIsLiteralUntilFS(t *testing.T) {
	source := "^XA^FDPrice: ~EG$5^XZ and ^CI28^FS^XZ"

	toks, _ := All(source)
	var fd *Token
	for i := range toks {
		if toks[i].Code == "FD" {
			fd = &toks[i]
			break
		}
	}
	if fd == nil {
		t.Fatal("expected an FD token")
	}
	want := "Price: ~EG$5^XZ and ^CI28"
	if fd.Payload != want {
		t.Fatalf("FD payload = %q, want %q", fd.Payload, want)
	}
}

func TestGraphicPayloadUsesByteCountField(t *testing.T) {
	// ~DG name,total bytes,bytes per row,data — the data field must be
	// read by its declared byte count, not by scanning for a prefix.
	source := "~DGSAMPLE.GRF,4,2,FFFF0000^XA"

	toks, _ := All(source)
	if len(toks) == 0 || toks[0].Code != "DG" {
		t.Fatalf("expected first token to be DG, got %+v", toks)
	}
	if toks[0].Payload != "SAMPLE.GRF,4,2,FFFF0000" {
		t.Fatalf("DG payload = %q", toks[0].Payload)
	}
	if len(toks) < 2 || toks[1].Code != "XA" {
		t.Fatalf("expected a trailing XA token after the graphic payload, got %+v", toks)
	}
}

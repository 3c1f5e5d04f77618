package otcompose

import (
	"bytes"
	"testing"

	"github.com/fontist/fontisan/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func dfontTestFonts(t *testing.T) ([]*ot.Font, [][]byte) {
	t.Helper()
	fonts := []*ot.Font{
		synthFont(ot.VersionTrueType, tenTables(10, 4000)),
		synthFont(ot.VersionTrueType, tenTables(90, 4000)),
		synthFont(ot.VersionTrueType, tenTables(170, 4000)),
	}
	payloads := make([][]byte, len(fonts))
	for i, f := range fonts {
		sfnt, err := SerializeFont(f)
		if err != nil {
			t.Fatal(err)
		}
		payloads[i] = sfnt
	}
	return fonts, payloads
}

func TestDfontLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fonts, payloads := dfontTestFonts(t)
	result, err := Compose(fonts, FormatDfont, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	out := result.Bytes
	var dataLen uint32
	for _, p := range payloads {
		dataLen += 4 + uint32(len(p))
	}
	n := len(fonts)
	mapLen := uint32(28 + 2 + 8 + 12*n)
	mapOffset := uint32(16+240) + dataLen
	if got := uint32(len(out)); got != mapOffset+mapLen {
		t.Fatalf("expected %d output bytes, got %d", mapOffset+mapLen, got)
	}
	// fork header
	if be32(out) != 0x100 {
		t.Errorf("expected data offset 0x100, got %x", be32(out))
	}
	if be32(out[4:]) != mapOffset {
		t.Errorf("expected map offset %d, got %d", mapOffset, be32(out[4:]))
	}
	if be32(out[8:]) != dataLen {
		t.Errorf("expected data length %d, got %d", dataLen, be32(out[8:]))
	}
	if be32(out[12:]) != mapLen {
		t.Errorf("expected map length %d, got %d", mapLen, be32(out[12:]))
	}
	// the map repeats the fork header verbatim
	if !bytes.Equal(out[:16], out[mapOffset:mapOffset+16]) {
		t.Error("expected map to start with a copy of the fork header")
	}
}

func TestDfontResources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fonts, payloads := dfontTestFonts(t)
	result, err := Compose(fonts, FormatDfont, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	out := result.Bytes
	mapOffset := be32(out[4:])
	m := out[mapOffset:]
	if be16(m[24:]) != 28 {
		t.Errorf("expected type list at map offset 28, got %d", be16(m[24:]))
	}
	typeList := m[28:]
	if be16(typeList) != 0 { // number of types - 1
		t.Errorf("expected exactly one resource type, got %d", be16(typeList)+1)
	}
	if ot.Tag(be32(typeList[2:])) != ot.T("sfnt") {
		t.Errorf("expected resource type 'sfnt', got %s", ot.Tag(be32(typeList[2:])))
	}
	if got := int(be16(typeList[6:])) + 1; got != len(fonts) {
		t.Errorf("expected %d resources, got %d", len(fonts), got)
	}
	if be16(typeList[8:]) != 10 {
		t.Errorf("expected reference list at type list offset 10, got %d", be16(typeList[8:]))
	}
	refs := typeList[10:]
	var wantOffset uint32
	for i := range fonts {
		entry := refs[12*i:]
		if got := be16(entry); got != uint16(128+i) {
			t.Errorf("resource #%d: expected ID %d, got %d", i, 128+i, got)
		}
		if be16(entry[2:]) != 0xffff {
			t.Errorf("resource #%d: expected name offset -1", i)
		}
		if entry[4] != 0 {
			t.Errorf("resource #%d: expected zero attributes", i)
		}
		dataOffset := uint32(entry[5])<<16 | uint32(entry[6])<<8 | uint32(entry[7])
		if dataOffset != wantOffset {
			t.Errorf("resource #%d: expected data offset %d, got %d", i, wantOffset, dataOffset)
		}
		// the length prefix sits at the reported offset within useful data
		abs := 0x100 + dataOffset
		length := be32(out[abs:])
		if int(length) != len(payloads[i]) {
			t.Errorf("resource #%d: expected payload length %d, got %d",
				i, len(payloads[i]), length)
		}
		if !bytes.Equal(out[abs+4:abs+4+length], payloads[i]) {
			t.Errorf("resource #%d: payload bytes differ from standalone serialization", i)
		}
		wantOffset += 4 + length
	}
}

// Every dfont member parses back as a standalone font with the original
// tables.
func TestDfontMembersRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fonts, _ := dfontTestFonts(t)
	result, err := Compose(fonts, FormatDfont, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	out := result.Bytes
	cursor := uint32(0x100)
	for i, f := range fonts {
		length := be32(out[cursor:])
		member, err := ot.Parse(out[cursor+4 : cursor+4+length])
		if err != nil {
			t.Fatalf("member #%d does not parse: %v", i, err)
		}
		for _, tag := range f.TableTags() {
			if !bytes.Equal(member.Table(tag).Binary(), f.Table(tag).Binary()) {
				t.Errorf("member #%d: table %s differs", i, tag)
			}
		}
		cursor += 4 + length
	}
}

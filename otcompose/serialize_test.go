package otcompose

import (
	"bytes"
	"testing"

	"github.com/fontist/fontisan/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSerializeFontRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	f := synthFont(ot.VersionTrueType, tenTables(10, 1001)) // odd size forces padding
	out, err := SerializeFont(f)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ot.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.SfntVersion() != ot.VersionTrueType {
		t.Errorf("expected TrueType version, got %08x", parsed.SfntVersion())
	}
	if parsed.TableCount() != f.TableCount() {
		t.Fatalf("expected %d tables, got %d", f.TableCount(), parsed.TableCount())
	}
	for _, tag := range f.TableTags() {
		got := parsed.Table(tag)
		if got == nil {
			t.Fatalf("table %s missing after round trip", tag)
		}
		if !bytes.Equal(got.Binary(), f.Table(tag).Binary()) {
			t.Errorf("table %s bytes differ after round trip", tag)
		}
	}
}

func TestSerializeFontDirectorySorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	// add tables in decidedly unsorted order
	f := ot.NewFont(ot.VersionTrueType)
	f.AddTable(ot.T("maxp"), synthBody(32, 1))
	f.AddTable(ot.T("head"), synthBody(54, 2))
	f.AddTable(ot.T("EBLC"), synthBody(16, 3))
	out, err := SerializeFont(f)
	if err != nil {
		t.Fatal(err)
	}
	prev := ot.Tag(0)
	for i := 0; i < 3; i++ {
		tag := ot.Tag(be32(out[12+16*i:]))
		if tag < prev {
			t.Errorf("directory entry #%d (%s) out of order", i, tag)
		}
		prev = tag
	}
	// checksums in the directory match the bodies
	for i := 0; i < 3; i++ {
		e := out[12+16*i:]
		offset, length := be32(e[8:]), be32(e[12:])
		if offset%4 != 0 {
			t.Errorf("entry #%d: offset %d not aligned", i, offset)
		}
		if got, want := Checksum(out[offset:offset+length]), be32(e[4:]); got != want {
			t.Errorf("entry #%d: checksum %08x, directory says %08x", i, got, want)
		}
	}
}

func TestSerializeEmptyFontRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	f := ot.NewFont(ot.VersionTrueType)
	if _, err := SerializeFont(f); !IsKind(err, KindInputInvalid) {
		t.Errorf("expected InputInvalid for empty font, got %v", err)
	}
}

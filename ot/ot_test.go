package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.ot")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("OS/2")
	if tag.String() != "OS/2" {
		t.Errorf("expected tag T(OS/2) to be 'OS/2', is %s", tag.String())
	}
}

func TestKnownVersions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.ot")
	defer teardown()
	//
	for _, v := range []uint32{VersionTrueType, VersionAppleTT, VersionOpenType} {
		if !KnownVersion(v) {
			t.Errorf("expected version %08x to be known", v)
		}
	}
	if KnownVersion(0xdeadbeef) {
		t.Error("expected 0xdeadbeef to be unknown")
	}
}

func TestFontAssembly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.ot")
	defer teardown()
	//
	f := NewFont(VersionTrueType)
	f.AddTable(T("maxp"), []byte{0, 1})
	f.AddTable(T("head"), []byte{2, 3, 4})
	f.AddTable(T("hhea"), []byte{5})
	if f.TableCount() != 3 {
		t.Fatalf("expected 3 tables, got %d", f.TableCount())
	}
	// tags are reported in insertion order
	tags := f.TableTags()
	want := []Tag{T("maxp"), T("head"), T("hhea")}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("expected tag #%d to be %s, is %s", i, want[i], tags[i])
		}
	}
	if table := f.Table(T("head")); table == nil || len(table.Binary()) != 3 {
		t.Error("expected 'head' table with 3 bytes")
	}
	if f.Table(T("glyf")) != nil {
		t.Error("expected no 'glyf' table")
	}
}

func TestFontAddTableReplaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.ot")
	defer teardown()
	//
	f := NewFont(VersionTrueType)
	f.AddTable(T("head"), []byte{1})
	f.AddTable(T("maxp"), []byte{2})
	f.AddTable(T("head"), []byte{3, 3})
	if f.TableCount() != 2 {
		t.Fatalf("expected replacing a tag to keep the count at 2, got %d", f.TableCount())
	}
	if tags := f.TableTags(); tags[0] != T("head") {
		t.Errorf("expected 'head' to keep its position, first tag is %s", tags[0])
	}
	if len(f.Table(T("head")).Binary()) != 2 {
		t.Error("expected replaced 'head' body")
	}
}

func TestTableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.ot")
	defer teardown()
	//
	table := newTable(T("cmap"), []byte{1, 2, 3, 4}, 0, 4)
	if s := table.NameTag().String(); s != "cmap" {
		t.Errorf("expected table name to be cmap, is %v", s)
	}
}

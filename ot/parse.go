package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments will occasionally cite passages from the OpenType
// specification version 1.9, chapters "The OpenType Font File" and
// "Font Collections";
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Maximum reasonable counts for SFNT container structures. These limits
// prevent malicious files from claiming unreasonably large counts that could
// lead to excessive memory allocation.
const (
	MaxTableCount      = 512  // tables per font: real fonts carry a few dozen
	MaxCollectionFonts = 1024 // member fonts per collection file
)

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// ---------------------------------------------------------------------------

// Parse parses a single SFNT font from a byte slice.
//
// A Font needs ongoing access to the font's byte-data after the Parse
// function returns. Its elements are assumed immutable while the Font remains
// in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !KnownVersion(h.FontType) {
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	lg := &issueLog{}
	otf, err := parseFontAt(binarySegm(font), 0, lg)
	if err != nil {
		return nil, err
	}
	otf.issues = lg.issues
	return otf, nil
}

// ParseCollection parses a font collection file (TTC/OTC) from a byte slice.
//
// Member fonts share the underlying byte data; the collection and all its
// Fonts are usable only as long as the input slice stays unmodified.
func ParseCollection(file []byte) (*Collection, error) {
	src := binarySegm(file)
	hdr, err := src.view(0, 12)
	if err != nil {
		return nil, errFontFormat("collection header")
	}
	coll := &Collection{}
	coll.Header.Tag = MakeTag(hdr[0:4])
	if coll.Header.Tag != T("ttcf") {
		return nil, errFontFormat(fmt.Sprintf("not a font collection, tag is %s", coll.Header.Tag))
	}
	coll.Header.MajorVersion = u16(hdr[4:6])
	coll.Header.MinorVersion = u16(hdr[6:8])
	if coll.Header.MajorVersion != 1 && coll.Header.MajorVersion != 2 {
		// "The TTC header version shall be 1.0 or 2.0"
		return nil, errFontFormat(fmt.Sprintf("collection header version %d not supported",
			coll.Header.MajorVersion))
	}
	coll.Header.NumFonts = u32(hdr[8:12])
	if coll.Header.NumFonts == 0 || coll.Header.NumFonts > MaxCollectionFonts {
		return nil, errFontFormat(fmt.Sprintf("implausible collection font count %d",
			coll.Header.NumFonts))
	}
	tracer().Debugf("collection of %d fonts", coll.Header.NumFonts)
	n := int(coll.Header.NumFonts)
	offsets, err := src.view(12, n*4)
	if err != nil {
		return nil, errFontFormat("collection offset table")
	}
	coll.Fonts = make([]*Font, 0, n)
	for i := 0; i < n; i++ {
		dirOffset := u32(offsets[i*4 : i*4+4])
		lg := &issueLog{}
		otf, err := parseFontAt(src, dirOffset, lg)
		if err != nil {
			return nil, fmt.Errorf("collection font #%d: %w", i, err)
		}
		if !KnownVersion(otf.Header.FontType) {
			return nil, errFontFormat(fmt.Sprintf("collection font #%d: font type not supported: %x",
				i, otf.Header.FontType))
		}
		otf.issues = lg.issues
		coll.Fonts = append(coll.Fonts, otf)
	}
	return coll, nil
}

// parseFontAt reads a font directory beginning at dirOffset and attaches a
// generic table for every directory entry. Table record offsets are measured
// from the beginning of the file, for single fonts and collection members
// alike.
func parseFontAt(src binarySegm, dirOffset uint32, lg *issueLog) (*Font, error) {
	hdr, err := src.view(int(dirOffset), 12)
	if err != nil {
		return nil, lg.fail(0, dirOffset, "font directory out of bounds")
	}
	otf := &Font{
		Header: &FontHeader{FontType: u32(hdr[0:4]), TableCount: u16(hdr[4:6])},
		tables: make(map[Tag]Table),
	}
	if otf.Header.TableCount > MaxTableCount {
		return nil, lg.fail(0, dirOffset, "implausible table count %d", otf.Header.TableCount)
	}
	// "The table directory format allows for a large number of tables. …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(otf.Header.TableCount))
	if err != nil {
		return nil, lg.fail(0, dirOffset, "table count too large: %v", err)
	}
	buf, err := src.view(int(dirOffset)+12, tableRecordsSize)
	if err != nil {
		return nil, lg.fail(0, dirOffset+12, "table record entries out of bounds")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			return nil, lg.fail(tag, dirOffset+12, "table directory not sorted by tag")
		}
		if tag == prevTag {
			return nil, lg.fail(tag, dirOffset+12, "duplicate table tag")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, lg.fail(tag, off, "table offset not 4-byte aligned")
		}
		// Validate table bounds before slicing to prevent panic
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, lg.fail(tag, off, "size calculation overflow: %v", err)
		}
		if size == 0 {
			lg.warn(tag, off, "table has zero length")
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, lg.fail(tag, off, "bounds [%d:%d] exceed font size %d", off, tableEnd, len(src))
		}
		otf.tables[tag] = newTable(tag, src[off:tableEnd], off, size)
		otf.order = append(otf.order, tag)
	}
	assertEqualInt("table count", len(otf.order), int(otf.Header.TableCount))
	return otf, nil
}

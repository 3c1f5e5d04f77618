package ot

import "fmt"

// SFNT version signatures. The version (or "scaler type") of a font decides
// how glyph outlines are encoded, but at the container level it is just a
// four-byte signature at offset 0.
//
// OpenType fonts that contain TrueType outlines should use the value of
// 0x00010000 for the version; OpenType fonts containing CFF data (version 1
// or 2) use 0x4F54544F ('OTTO', when re-interpreted as a Tag). The Apple
// specification for TrueType fonts additionally allows 'true'.
const (
	VersionTrueType uint32 = 0x00010000
	VersionAppleTT  uint32 = 0x74727565 // 'true'
	VersionOpenType uint32 = 0x4F54544F // 'OTTO', CFF-flavored
)

// KnownVersion reports whether v is one of the three SFNT version signatures
// this module accepts.
func KnownVersion(v uint32) bool {
	return v == VersionTrueType || v == VersionAppleTT || v == VersionOpenType
}

// Font is the container-level view of an SFNT font: a version signature plus
// an ordered set of tagged tables. Table bodies are opaque byte segments.
//
// The order of tables is the order the source stored them (for parsed fonts)
// or the order of AddTable calls (for assembled fonts). Within a font, tags
// are unique.
type Font struct {
	Header *FontHeader
	tables map[Tag]Table
	order  []Tag       // tags in storage order
	issues []FontIssue // non-fatal defects flagged during parsing
}

// FontHeader is a directory of the top-level tables in a font. If the font
// file contains only one font, the table directory will begin at byte 0 of
// the file. If the font file is a collection (TTC/OTC), the beginning point
// of the table directory for each font is indicated in the TTC header.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// NewFont creates an empty font with the given SFNT version signature.
// Tables are attached with AddTable.
func NewFont(version uint32) *Font {
	return &Font{
		Header: &FontHeader{FontType: version},
		tables: make(map[Tag]Table),
	}
}

// AddTable attaches a table body to the font. The body is kept by reference
// and must not change while the font is in use. Adding a tag twice replaces
// the body but keeps the tag's original position.
func (otf *Font) AddTable(tag Tag, body []byte) {
	if _, ok := otf.tables[tag]; !ok {
		otf.order = append(otf.order, tag)
		otf.Header.TableCount++
	}
	otf.tables[tag] = newTable(tag, body, 0, uint32(len(body)))
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns the tags of all tables contained in the font, in the
// order the font stores them. The returned slice is a copy.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, len(otf.order))
	copy(tags, otf.order)
	return tags
}

// TableCount returns the number of tables in the font.
func (otf *Font) TableCount() int {
	return len(otf.order)
}

// SfntVersion returns the font's four-byte version signature.
func (otf *Font) SfntVersion() uint32 {
	if otf == nil || otf.Header == nil {
		return 0
	}
	return otf.Header.FontType
}

// Issues returns the non-fatal defects the parser flagged about this font,
// e.g. zero-length tables. A fatal defect is returned as the error from
// Parse instead and never produces a Font.
func (otf *Font) Issues() []FontIssue {
	if otf.issues == nil {
		return []FontIssue{}
	}
	return otf.issues
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, script,
// language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various SFNT font tables. At the container
// level every table is opaque: a tag plus a byte segment.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	NameTag() Tag             // the 4-byte table tag
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	return &genericTable{tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}}
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of SFNT tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

// NameTag returns the 4-letter name of a table.
func (tb *tableBase) NameTag() Tag {
	return tb.name
}

var _ Table = &genericTable{}

// --- Collections -----------------------------------------------------------

// Collection is a parsed font collection file (TTC/OTC): a master header plus
// one Font per member. Member fonts may share table bodies; the member Fonts
// hold views into the same underlying byte slice.
type Collection struct {
	Header CollectionHeader
	Fonts  []*Font
}

// CollectionHeader mirrors the on-disk TTC header.
type CollectionHeader struct {
	Tag          Tag // always 'ttcf'
	MajorVersion uint16
	MinorVersion uint16
	NumFonts     uint32
}

// NumFonts returns the number of member fonts.
func (coll *Collection) NumFonts() int {
	if coll == nil {
		return 0
	}
	return len(coll.Fonts)
}

func (coll *Collection) String() string {
	return fmt.Sprintf("collection[%s %d.%d] of %d fonts", coll.Header.Tag,
		coll.Header.MajorVersion, coll.Header.MinorVersion, len(coll.Fonts))
}

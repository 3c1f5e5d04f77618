package otquery

import (
	"fmt"

	"github.com/fontist/fontisan/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// Layout constants of OpenType table 'name': a 6-byte header, then
// 12-byte records, then string storage.
const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// Platform and encoding selectors of name records. Records under any other
// selector pair (Macintosh, Windows symbol, ...) are skipped; labeling a
// font needs one decodable spelling, not all of them.
const (
	platformUnicode    = 0
	platformWindows    = 3
	encodingUnicodeBMP = 3
	encodingWindowsBMP = 1
)

// nameEntry is one decodable record of a font's 'name' table: the name ID
// plus the raw UTF-16BE value bytes from string storage.
type nameEntry struct {
	id    sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	value []byte
}

// nameEntries scans a font's 'name' table once and collects every record
// this package can decode, in storage order. A missing or broken table
// yields an empty list; records pointing outside the table are skipped.
func nameEntries(otf *ot.Font) []nameEntry {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("name"))
	if table == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	b := table.Binary()
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	storage := int(u16(b[4:6]))
	if storage > len(b) || nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table header inconsistent, %d records", count)
		return nil
	}
	var entries []nameEntry
	for i := 0; i < count; i++ {
		rec := b[nameHeaderSize+i*nameRecordSize:]
		if !decodableName(u16(rec[0:2]), u16(rec[2:4])) {
			continue
		}
		length := int(u16(rec[8:10]))
		start := storage + int(u16(rec[10:12]))
		if start+length > len(b) {
			continue
		}
		entries = append(entries, nameEntry{
			id:    sfnt.NameID(u16(rec[6:8])),
			value: b[start : start+length],
		})
	}
	return entries
}

func decodableName(platform, encoding uint16) bool {
	return (platform == platformUnicode && encoding == encodingUnicodeBMP) ||
		(platform == platformWindows && encoding == encodingWindowsBMP)
}

// lookup decodes the first entry carrying the wanted name ID. Entries whose
// value bytes do not decode are passed over.
func lookup(entries []nameEntry, id sfnt.NameID) string {
	for _, e := range entries {
		if e.id != id {
			continue
		}
		if s, err := decodeUTF16(e.value); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot
// be decoded by the current name-table reader.
func FamilyName(otf *ot.Font) (family, subfamily string) {
	entries := nameEntries(otf)
	return lookup(entries, sfnt.NameIDFamily), lookup(entries, sfnt.NameIDSubfamily)
}

// FullName extracts the full font name from a font's `name` table, falling
// back to "family subfamily" if no full-name record is present.
func FullName(otf *ot.Font) string {
	entries := nameEntries(otf)
	if full := lookup(entries, sfnt.NameIDFull); full != "" {
		return full
	}
	family := lookup(entries, sfnt.NameIDFamily)
	if subfamily := lookup(entries, sfnt.NameIDSubfamily); family != "" && subfamily != "" {
		return family + " " + subfamily
	}
	return family
}

// FontType classifies a font's flavor from its version signature.
func FontType(otf *ot.Font) string {
	switch otf.SfntVersion() {
	case ot.VersionTrueType, ot.VersionAppleTT:
		return "TrueType"
	case ot.VersionOpenType:
		return "OpenType/CFF"
	}
	return "unknown"
}

func decodeUTF16(b []byte) (string, error) {
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := decoder.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

package otcompose

import (
	"github.com/fontist/fontisan/ot"
)

// SerializeFont emits one font as a standalone SFNT byte stream: font
// directory with checksums, then the table bodies in ascending tag order,
// each aligned to a 4-byte boundary. Table bodies travel through untouched;
// in particular the 'head' table's checkSumAdjustment field is left as the
// input font carries it.
//
// This is the serialization primitive underneath the dfont emitter (which
// stores whole fonts, not shared tables) and underneath member extraction
// from parsed collections.
func SerializeFont(f *ot.Font) ([]byte, error) {
	k := f.TableCount()
	if k == 0 {
		return nil, errInputInvalid(-1, 0, "cannot serialize a font without tables")
	}
	tags := sortedTags(f)
	// solve offsets first: directory, then aligned bodies
	offsets := make([]uint32, k)
	cursor := uint64(dirHeaderSize + dirEntrySize*k)
	var total uint64
	for i, tag := range tags {
		table := f.Table(tag)
		if table == nil {
			return nil, errInvariant(-1, tag, "font reports tag without table")
		}
		if cursor > maxOffset {
			return nil, errOutputTooLarge(tag, "table body falls beyond 4 GiB")
		}
		offsets[i] = uint32(cursor)
		total = cursor + uint64(len(table.Binary()))
		cursor = alignUp(total)
	}
	if total > maxOffset {
		return nil, errOutputTooLarge(0, "font exceeds 4 GiB")
	}
	w := newRegionWriter(uint32(total))
	searchRange, entrySelector, rangeShift := directoryParams(k)
	w.u32(f.SfntVersion())
	w.u16(uint16(k))
	w.u16(searchRange)
	w.u16(entrySelector)
	w.u16(rangeShift)
	for i, tag := range tags {
		body := f.Table(tag).Binary()
		w.tag(tag)
		w.u32(Checksum(body))
		w.u32(offsets[i])
		w.u32(uint32(len(body)))
	}
	for i, tag := range tags {
		if err := w.padTo(offsets[i], tag); err != nil {
			return nil, err
		}
		w.bytes(f.Table(tag).Binary())
	}
	assertEqualUint32("serialized font size", w.pos(), uint32(total))
	return w.buf, nil
}

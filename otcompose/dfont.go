package otcompose

import (
	"github.com/fontist/fontisan/ot"
)

// Apple resource fork layout constants, adapted from resource fork to data
// fork. See "Inside Macintosh: More Macintosh Toolbox", Resource Manager.
const (
	dfontHeaderSize = 16
	dfontDataPad    = 240  // useful data conventionally starts at 0x100
	dfontFirstID    = 128  // resource IDs count up from here
	dfontMapFixed   = 28   // header copy + reserved + two list offsets
	dfontRefSize    = 12   // one reference list entry
	maxU24          = 1<<24 - 1
)

// emitDfont wraps the member fonts as resources of type 'sfnt' in an Apple
// resource-fork layout. Unlike the TTC emitter, dfont stores whole fonts:
// each member is reserialized standalone from its own table map, and no
// table body sharing happens on disk.
//
// The header's data offset (0x100) is a conventional pointer to where useful
// data begins, after a 240-byte zero prelude; the map offset is an actual
// file offset. Both are duplicated verbatim inside the map.
func emitDfont(fonts []*ot.Font) ([]byte, error) {
	n := len(fonts)
	payloads := make([][]byte, n)
	entryOffsets := make([]uint32, n) // from useful-data start to length prefix
	var dataLen uint64
	for i, f := range fonts {
		sfnt, err := SerializeFont(f)
		if err != nil {
			return nil, err
		}
		if dataLen > maxU24 {
			return nil, errOutputTooLarge(0, "dfont resource offset for font #%d exceeds 24 bits", i)
		}
		payloads[i] = sfnt
		entryOffsets[i] = uint32(dataLen)
		dataLen += 4 + uint64(len(sfnt))
	}
	if dataLen > maxOffset {
		return nil, errOutputTooLarge(0, "dfont data region exceeds 4 GiB")
	}
	typeListSize := 2 + 8 + dfontRefSize*n // type count, one 'sfnt' entry, reference list
	mapLen := dfontMapFixed + typeListSize
	mapOffset := uint64(dfontHeaderSize+dfontDataPad) + dataLen
	if mapOffset+uint64(mapLen) > maxOffset {
		return nil, errOutputTooLarge(0, "dfont exceeds 4 GiB")
	}
	w := newRegionWriter(uint32(mapOffset) + uint32(mapLen))
	writeHeader := func() {
		w.u32(dfontHeaderSize + dfontDataPad) // 0x100, start of useful data
		w.u32(uint32(mapOffset))
		w.u32(uint32(dataLen))
		w.u32(uint32(mapLen))
	}
	// fork header, then the zero prelude
	writeHeader()
	if err := w.padTo(dfontHeaderSize+dfontDataPad, 0); err != nil {
		return nil, err
	}
	// data region: per font a big-endian length prefix, then the SFNT bytes
	for _, sfnt := range payloads {
		w.u32(uint32(len(sfnt)))
		w.bytes(sfnt)
	}
	if err := w.padTo(uint32(mapOffset), 0); err != nil {
		return nil, err
	}
	// resource map: header copy, reserved handle/file-ref/attributes fields
	writeHeader()
	w.u32(0)
	w.u16(0)
	w.u16(0)
	w.u16(dfontMapFixed)                    // type list offset, from map start
	w.u16(uint16(dfontMapFixed + typeListSize)) // name list offset (list is empty)
	// type list: exactly one type, 'sfnt'
	w.u16(0) // number of types - 1
	w.tag(ot.T("sfnt"))
	w.u16(uint16(n - 1)) // number of resources - 1
	w.u16(10)            // reference list offset, from start of type list
	// reference list
	for i := range payloads {
		w.u16(uint16(dfontFirstID + i))
		w.u16(0xffff) // no name
		// attributes byte and 3-byte data offset packed together
		off := entryOffsets[i]
		w.buf = append(w.buf, 0, byte(off>>16), byte(off>>8), byte(off))
		w.u32(0) // reserved for handle
	}
	if w.pos() != uint32(mapOffset)+uint32(mapLen) {
		return nil, errInvariant(-1, 0, "emitted %d bytes, planned %d", w.pos(),
			uint32(mapOffset)+uint32(mapLen))
	}
	return w.buf, nil
}

package otcompose

import (
	"math/bits"
	"sort"

	"github.com/fontist/fontisan/ot"
)

// regionWriter produces the output bytes region by region. Before each
// region it catches up to the region's planned offset with zero padding;
// a current position past the planned offset means planner and emitter
// disagree, which is reported instead of silently miswriting.
type regionWriter struct {
	buf []byte
}

func newRegionWriter(capacity uint32) *regionWriter {
	return &regionWriter{buf: make([]byte, 0, capacity)}
}

func (w *regionWriter) pos() uint32 {
	return uint32(len(w.buf))
}

// padTo zero-fills up to the expected offset of the next region.
func (w *regionWriter) padTo(offset uint32, tag ot.Tag) error {
	if w.pos() > offset {
		return errInvariant(-1, tag, "emitter at %d, past planned offset %d", w.pos(), offset)
	}
	for w.pos() < offset {
		w.buf = append(w.buf, 0)
	}
	return nil
}

func (w *regionWriter) u16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

func (w *regionWriter) u32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *regionWriter) tag(t ot.Tag) {
	w.u32(uint32(t))
}

func (w *regionWriter) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// directoryParams are the binary-search helper fields of an SFNT font
// directory header. For k tables:
//
//	entrySelector = floor(log2(k))
//	searchRange   = 2^entrySelector * 16
//	rangeShift    = k*16 - searchRange
func directoryParams(k int) (searchRange, entrySelector, rangeShift uint16) {
	sel := bits.Len(uint(k)) - 1
	searchRange = uint16(16 << sel)
	entrySelector = uint16(sel)
	rangeShift = uint16(k*16) - searchRange
	return
}

// sortedTags returns a font's tags sorted bytewise. Directory entries must be
// written in ascending tag order regardless of how the source font stored its
// tables; sorting once up front serves both size math and emission.
func sortedTags(f *ot.Font) []ot.Tag {
	tags := f.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// emitCollection writes the TTC/OTC bytes for a solved layout plan: header,
// offset table, per-font directories with table checksums, then the
// deduplicated table bodies. The emitter trusts the driver's validation and
// the planner's offsets; any disagreement surfaces as KindInvariantViolation.
func emitCollection(index *DedupIndex, fonts []*ot.Font, plan *LayoutPlan, opts Options) ([]byte, error) {
	w := newRegionWriter(plan.TotalSize)
	// TTC header, 12 bytes
	w.tag(ot.T("ttcf"))
	w.u16(collectionMajor)
	w.u16(collectionMinor)
	w.u32(uint32(len(fonts)))
	// offset table: one directory offset per member font
	for _, offset := range plan.FontDirectoryOffsets {
		w.u32(offset)
	}
	// per-font directories
	for i, f := range fonts {
		if err := w.padTo(plan.FontDirectoryOffsets[i], 0); err != nil {
			return nil, err
		}
		tags := sortedTags(f)
		searchRange, entrySelector, rangeShift := directoryParams(len(tags))
		w.u32(f.SfntVersion())
		w.u16(uint16(len(tags)))
		w.u16(searchRange)
		w.u16(entrySelector)
		w.u16(rangeShift)
		for _, tag := range tags {
			c, ok := index.CanonicalFor(i, tag)
			if !ok {
				return nil, errInvariant(i, tag, "no canonical entry for directory emission")
			}
			offset, ok := plan.BodyOffset(c)
			if !ok {
				return nil, errInvariant(i, tag, "canonical entry missing from layout plan")
			}
			w.tag(tag)
			w.u32(Checksum(c.Body))
			w.u32(offset)
			w.u32(uint32(c.Size()))
		}
	}
	// table bodies, in planned (ascending offset) order
	for _, c := range plan.Bodies() {
		offset, _ := plan.BodyOffset(c)
		if err := w.padTo(offset, c.Tag); err != nil {
			return nil, err
		}
		w.bytes(c.Body)
	}
	if w.pos() != plan.TotalSize {
		return nil, errInvariant(-1, 0, "emitted %d bytes, planned %d", w.pos(), plan.TotalSize)
	}
	if opts.VerifyChecksums {
		if err := verifyEmittedChecksums(w.buf, index, plan); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

// verifyEmittedChecksums recomputes every written checksum from the emitted
// body region and compares it against the canonical body's checksum. A
// mismatch means the emitter wrote a body somewhere other than where the
// directories point.
func verifyEmittedChecksums(out []byte, index *DedupIndex, plan *LayoutPlan) error {
	for _, c := range plan.Bodies() {
		offset, ok := plan.BodyOffset(c)
		if !ok {
			return errInvariant(-1, c.Tag, "canonical entry missing from layout plan")
		}
		end := uint64(offset) + uint64(c.Size())
		if end > uint64(len(out)) {
			return errInvariant(-1, c.Tag, "emitted body [%d:%d] exceeds output size %d",
				offset, end, len(out))
		}
		if got, want := Checksum(out[offset:end]), Checksum(c.Body); got != want {
			return errInvariant(-1, c.Tag, "checksum reverification failed: %08x != %08x", got, want)
		}
	}
	return nil
}

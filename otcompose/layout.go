package otcompose

import (
	"math"

	"github.com/fontist/fontisan/ot"
)

// On-disk constants of the TTC envelope. The TTC header is 12 bytes, each
// font directory header is 12 bytes, each directory entry 16 bytes, and the
// offset table holds one uint32 per member font.
const (
	ttcHeaderSize   = 12
	dirHeaderSize   = 12
	dirEntrySize    = 16
	bodyAlignment   = 4
	maxOffset       = math.MaxUint32
	collectionMajor = 1
	collectionMinor = 0
)

// LayoutPlan is the complete byte-exact layout decision for a collection
// file: where each font directory begins and where each canonical table body
// will be written. The plan is solved in full before any byte is emitted, so
// emission never needs to seek or patch.
type LayoutPlan struct {
	FontDirectoryOffsets []uint32
	TotalSize            uint32
	bodyOffsets          map[canonicalKey]uint32
	bodies               []*CanonicalTable // in ascending offset order
}

// BodyOffset returns the planned file offset of a canonical table body.
func (plan *LayoutPlan) BodyOffset(c *CanonicalTable) (uint32, bool) {
	offset, ok := plan.bodyOffsets[c.key()]
	return offset, ok
}

// Bodies returns the canonical tables in ascending offset order: all shared
// bodies first, then all unique ones, each partition sorted by (tag, digest).
func (plan *LayoutPlan) Bodies() []*CanonicalTable {
	return plan.bodies
}

// align4 returns the smallest y >= x with y ≡ 0 (mod 4).
func align4(x uint32) uint32 {
	return (x + 3) &^ 3
}

// PlanLayout solves all file offsets for a TTC/OTC collection: TTC header,
// offset table, per-font directories, then table bodies with shared bodies
// grouped before unique ones. Grouping the many-reader region first — with
// sorted iteration inside each partition — makes two runs over identical
// inputs produce byte-identical output, which content-addressed build caches
// and deterministic diffs rely on.
//
// Every computed offset is checked against the 32-bit on-disk offset field;
// overflow surfaces as a KindOutputTooLarge error.
func PlanLayout(index *DedupIndex, fonts []*ot.Font) (*LayoutPlan, error) {
	plan := &LayoutPlan{
		FontDirectoryOffsets: make([]uint32, len(fonts)),
		bodyOffsets:          make(map[canonicalKey]uint32),
	}
	// TTC header, then one uint32 directory offset per font.
	cursor := uint64(ttcHeaderSize + 4*len(fonts))
	for i, f := range fonts {
		if cursor > maxOffset {
			return nil, errOutputTooLarge(0, "font directory #%d falls beyond 4 GiB", i)
		}
		plan.FontDirectoryOffsets[i] = uint32(cursor)
		// Directory size depends on the table count only, never on tag order.
		dirSize := uint64(dirHeaderSize + dirEntrySize*f.TableCount())
		cursor = alignUp(cursor + dirSize)
	}
	// Table bodies: shared partition first, then unique, each sorted by
	// (tag, digest). Canonicals() already iterates in sorted order, so two
	// passes keep the partition split stable.
	for _, shared := range []bool{true, false} {
		for _, c := range index.Canonicals() {
			if c.Shared() != shared {
				continue
			}
			if cursor > maxOffset {
				return nil, errOutputTooLarge(c.Tag, "table body falls beyond 4 GiB")
			}
			plan.bodyOffsets[c.key()] = uint32(cursor)
			plan.bodies = append(plan.bodies, c)
			cursor = alignUp(cursor + uint64(c.Size()))
		}
	}
	// No padding after the last body: the cursor may sit past the last
	// aligned boundary, but the file ends at the last body's final byte.
	if n := len(plan.bodies); n > 0 {
		last := plan.bodies[n-1]
		end := uint64(plan.bodyOffsets[last.key()]) + uint64(last.Size())
		cursor = end
	}
	if cursor > maxOffset {
		return nil, errOutputTooLarge(0, "collection exceeds 4 GiB")
	}
	plan.TotalSize = uint32(cursor)
	tracer().Debugf("layout: %d fonts, %d bodies, %d bytes total",
		len(fonts), len(plan.bodies), plan.TotalSize)
	return plan, nil
}

// alignUp is align4 over the 64-bit planning cursor. Planning runs in 64-bit
// space so that overflow is detected, not wrapped.
func alignUp(x uint64) uint64 {
	return (x + 3) &^ 3
}

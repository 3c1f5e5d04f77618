package otcompose

import (
	"sort"
	"sync"

	"github.com/fontist/fontisan/ot"
)

// canonicalKey is the global identity of a deduplicated table: tag plus
// content digest. Two tables with equal bodies but different tags stay
// separate — the tag is part of a table's identity, and the font directory
// records it explicitly.
type canonicalKey struct {
	tag    ot.Tag
	digest Digest
}

// less orders keys by (tag bytewise, digest bytewise). Every iteration over
// canonicals that contributes to output bytes uses this order.
func (k canonicalKey) less(other canonicalKey) bool {
	if k.tag != other.tag {
		return k.tag < other.tag
	}
	return k.digest.Less(other.digest)
}

// CanonicalTable is the single stored copy of a byte-identical table body
// within a collection, referenced by one or more member fonts.
type CanonicalTable struct {
	Tag            ot.Tag
	Digest         Digest
	Body           []byte // borrowed from the first referring font
	ReferringFonts []int  // font indices in input order, no duplicates
	size           int
}

// Size returns the unpadded byte size of the table body.
func (c *CanonicalTable) Size() int {
	return c.size
}

// Shared reports whether at least two fonts reference this body.
func (c *CanonicalTable) Shared() bool {
	return len(c.ReferringFonts) >= 2
}

func (c *CanonicalTable) key() canonicalKey {
	return canonicalKey{tag: c.Tag, digest: c.Digest}
}

// DedupIndex groups the tables of N fonts by (tag, digest) into canonical
// entries and records, per font, which canonical each of its tags resolves
// to. It retains each distinct table body once, until emission completes.
type DedupIndex struct {
	fontCount  int
	canonicals map[canonicalKey]*CanonicalTable
	refs       []map[ot.Tag]canonicalKey // per font: tag -> canonical
	ordered    []*CanonicalTable         // sorted by (tag, digest)
}

// IndexStats summarizes an index: reference counts and the proportion of
// references pointing at a shared canonical.
type IndexStats struct {
	TotalRefs          int
	DistinctCanonicals int
	SharedRefs         int
	UniqueRefs         int
	SharingPercentage  float64 // of TotalRefs, rounded to two decimals
}

// BuildIndex fingerprints every table of every font and groups them into
// canonical entries. Fonts are visited in input order, tables in the order
// each font stores them, so ReferringFonts lists are order-preserving.
func BuildIndex(fonts []*ot.Font) (*DedupIndex, error) {
	index := newIndex(len(fonts))
	fp := newFingerprinter()
	for i, f := range fonts {
		for _, tag := range f.TableTags() {
			table := f.Table(tag)
			if table == nil {
				return nil, errInvariant(i, tag, "font reports tag without table")
			}
			index.upsert(i, tag, fp.fingerprint(table.Binary()), table.Binary())
		}
	}
	index.finalize()
	return index, nil
}

// BuildIndexParallel is the data-parallel variant of BuildIndex: fonts are
// partitioned among workers, each worker fingerprints its fonts with its own
// cache into a worker-local map, and the results are merged single-threaded
// in font order. The merge order is fixed regardless of worker completion
// order, so the resulting index is identical to the one BuildIndex returns.
func BuildIndexParallel(fonts []*ot.Font, workers int) (*DedupIndex, error) {
	if workers <= 1 || len(fonts) <= 1 {
		return BuildIndex(fonts)
	}
	if workers > len(fonts) {
		workers = len(fonts)
	}
	type fontDigests struct {
		tags    []ot.Tag
		digests []Digest
		bodies  [][]byte
		err     error
	}
	scratch := make([]fontDigests, len(fonts))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			fp := newFingerprinter() // per-worker cache, never shared
			for i := w; i < len(fonts); i += workers {
				f := fonts[i]
				tags := f.TableTags()
				fd := fontDigests{
					tags:    tags,
					digests: make([]Digest, len(tags)),
					bodies:  make([][]byte, len(tags)),
				}
				for j, tag := range tags {
					table := f.Table(tag)
					if table == nil {
						fd.err = errInvariant(i, tag, "font reports tag without table")
						break
					}
					fd.digests[j] = fp.fingerprint(table.Binary())
					fd.bodies[j] = table.Binary()
				}
				scratch[i] = fd
			}
		}(w)
	}
	wg.Wait()
	index := newIndex(len(fonts))
	for i := range fonts {
		if scratch[i].err != nil {
			return nil, scratch[i].err
		}
		for j, tag := range scratch[i].tags {
			index.upsert(i, tag, scratch[i].digests[j], scratch[i].bodies[j])
		}
	}
	index.finalize()
	return index, nil
}

func newIndex(fontCount int) *DedupIndex {
	index := &DedupIndex{
		fontCount:  fontCount,
		canonicals: make(map[canonicalKey]*CanonicalTable),
		refs:       make([]map[ot.Tag]canonicalKey, fontCount),
	}
	for i := range index.refs {
		index.refs[i] = make(map[ot.Tag]canonicalKey)
	}
	return index
}

func (x *DedupIndex) upsert(fontIndex int, tag ot.Tag, digest Digest, body []byte) {
	key := canonicalKey{tag: tag, digest: digest}
	c, ok := x.canonicals[key]
	if !ok {
		c = &CanonicalTable{
			Tag:    tag,
			Digest: digest,
			Body:   body,
			size:   len(body),
		}
		x.canonicals[key] = c
	}
	c.ReferringFonts = append(c.ReferringFonts, fontIndex)
	x.refs[fontIndex][tag] = key
}

// finalize freezes the deterministic iteration order. Map iteration never
// reaches the output; the ordered slice does.
func (x *DedupIndex) finalize() {
	x.ordered = make([]*CanonicalTable, 0, len(x.canonicals))
	for _, c := range x.canonicals {
		x.ordered = append(x.ordered, c)
	}
	sort.Slice(x.ordered, func(i, j int) bool {
		return x.ordered[i].key().less(x.ordered[j].key())
	})
	tracer().Debugf("dedup index: %d canonical tables for %d fonts", len(x.ordered), x.fontCount)
}

// FontCount returns the number of fonts the index was built from.
func (x *DedupIndex) FontCount() int {
	return x.fontCount
}

// CanonicalFor returns the canonical entry a font's table resolves to.
func (x *DedupIndex) CanonicalFor(fontIndex int, tag ot.Tag) (*CanonicalTable, bool) {
	if fontIndex < 0 || fontIndex >= len(x.refs) {
		return nil, false
	}
	key, ok := x.refs[fontIndex][tag]
	if !ok {
		return nil, false
	}
	c, ok := x.canonicals[key]
	return c, ok
}

// Canonicals returns all canonical entries sorted by (tag bytewise, digest
// bytewise). The slice is shared; callers must not modify it.
func (x *DedupIndex) Canonicals() []*CanonicalTable {
	return x.ordered
}

// Stats computes reference statistics over the index.
func (x *DedupIndex) Stats() IndexStats {
	stats := IndexStats{DistinctCanonicals: len(x.ordered)}
	for _, c := range x.ordered {
		refs := len(c.ReferringFonts)
		stats.TotalRefs += refs
		if c.Shared() {
			stats.SharedRefs += refs
		} else {
			stats.UniqueRefs += refs
		}
	}
	if stats.TotalRefs > 0 {
		stats.SharingPercentage = round2(float64(stats.SharedRefs) / float64(stats.TotalRefs) * 100)
	}
	return stats
}

// round2 rounds to two decimal places, which is the precision sharing
// percentages are reported with.
func round2(x float64) float64 {
	return float64(int64(x*100+0.5)) / 100
}

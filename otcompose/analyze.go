package otcompose

import (
	"github.com/fontist/fontisan/ot"
)

// Report is the pre-build analysis of a dedup index: how much sharing the
// input fonts exhibit and how many bytes a collection would save over a
// plain concatenation. It carries no layout information, so it can be
// computed and shown to a caller before the decision to emit is made.
type Report struct {
	TotalFonts        int
	TotalTables       int   // table references across all fonts
	DistinctTables    int   // canonical entries
	BytesSaved        int64 // vs. storing every reference separately
	SharingPercentage float64
	Tags              []TagSharing // sorted by tag
}

// TagSharing lists, for one table tag, the groups of fonts sharing each
// distinct content.
type TagSharing struct {
	Tag    ot.Tag
	Groups []SharingGroup // sorted by digest
}

// SharingGroup is one distinct table content under a tag and the fonts
// carrying it.
type SharingGroup struct {
	Digest Digest
	Size   int
	Fonts  []int // font indices in input order
}

// Shared reports whether the group's body would be stored once for several
// fonts.
func (g SharingGroup) Shared() bool {
	return len(g.Fonts) >= 2
}

// Analyze produces the sharing report for an index. Each canonical counts
// once for storage; every additional reference beyond the first saves the
// canonical's size.
func Analyze(index *DedupIndex) *Report {
	report := &Report{TotalFonts: index.FontCount()}
	stats := index.Stats()
	report.TotalTables = stats.TotalRefs
	report.DistinctTables = stats.DistinctCanonicals
	report.SharingPercentage = stats.SharingPercentage
	var current *TagSharing
	for _, c := range index.Canonicals() {
		report.BytesSaved += int64(len(c.ReferringFonts)-1) * int64(c.Size())
		if current == nil || current.Tag != c.Tag {
			report.Tags = append(report.Tags, TagSharing{Tag: c.Tag})
			current = &report.Tags[len(report.Tags)-1]
		}
		fonts := make([]int, len(c.ReferringFonts))
		copy(fonts, c.ReferringFonts)
		current.Groups = append(current.Groups, SharingGroup{
			Digest: c.Digest,
			Size:   c.Size(),
			Fonts:  fonts,
		})
	}
	tracer().Debugf("analysis: %d fonts, %d refs, %d canonical, %d bytes saved",
		report.TotalFonts, report.TotalTables, report.DistinctTables, report.BytesSaved)
	return report
}

/*
Package fontisan packs fonts: it composes sets of TrueType and OpenType
fonts into font collection files (TTC/OTC) and Apple dfonts, storing
byte-identical tables only once.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "font" is a variant of a typeface with a certain weight, slant, etc.
An example is "Helvetica regular". A collection file packages several fonts
of a typeface — which tend to share many tables verbatim — into one file.

This root package is a thin convenience layer. The components underneath:

▪︎ `ot` — container-level SFNT parsing and in-memory font assembly

▪︎ `otcompose` — the composing pipeline: dedup, analysis, layout, emission

▪︎ `otquery` — name-table and flavor queries for labeling fonts

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package fontisan

import (
	"github.com/fontist/fontisan/internal/fontload"
	"github.com/fontist/fontisan/ot"
	"github.com/fontist/fontisan/otcompose"
	"github.com/fontist/fontisan/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontisan'
func tracer() tracing.Trace {
	return tracing.Select("fontisan")
}

// FromBinary parses raw SFNT bytes and returns a container-level font.
//
// The input is expected to contain a complete single-font SFNT stream. It
// must not change after parsing for the font to be usable.
func FromBinary(data []byte) (*ot.Font, error) {
	return ot.Parse(data)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records
// cannot be decoded by the current name-table reader.
func FamilyName(f *ot.Font) (family, subfamily string) {
	return otquery.FamilyName(f)
}

// ComposeFiles loads the given font files and composes them into a
// collection of the given format ("ttc", "otc" or "dfont"), with default
// options.
func ComposeFiles(paths []string, format string) (*otcompose.EmitResult, error) {
	target, err := otcompose.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	fonts, err := fontload.LoadComposerFonts(paths)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("composing %d fonts into %s", len(fonts), target)
	return otcompose.Compose(fonts, target, otcompose.DefaultOptions())
}

// AnalyzeFiles loads the given font files and reports the sharing analysis
// without emitting any collection bytes — the "preview savings" use case.
func AnalyzeFiles(paths []string) (*otcompose.Report, error) {
	fonts, err := fontload.LoadComposerFonts(paths)
	if err != nil {
		return nil, err
	}
	index, err := otcompose.BuildIndex(fonts)
	if err != nil {
		return nil, err
	}
	return otcompose.Analyze(index), nil
}

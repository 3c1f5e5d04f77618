package otcompose

import (
	"runtime"
	"strings"

	"github.com/fontist/fontisan/ot"
)

// Format selects the output container for Compose.
type Format int

const (
	FormatTTC Format = iota // TrueType collection
	FormatOTC               // OpenType collection; layout-identical to TTC
	FormatDfont             // Apple resource-fork layout (data fork variant)
)

// String returns the conventional file suffix for the format.
func (f Format) String() string {
	switch f {
	case FormatTTC:
		return "ttc"
	case FormatOTC:
		return "otc"
	case FormatDfont:
		return "dfont"
	default:
		return "UNKNOWN"
	}
}

// ParseFormat maps a format name ("ttc", "otc", "dfont") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ttc":
		return FormatTTC, nil
	case "otc":
		return FormatOTC, nil
	case "dfont":
		return FormatDfont, nil
	}
	return 0, errInputInvalid(-1, 0, "unknown collection format %q", name)
}

// Options tune a Compose run.
type Options struct {
	// Alignment is the table body alignment. Reserved: only 4 is currently
	// valid (an OpenType requirement); 0 means 4.
	Alignment uint32
	// VerifyChecksums makes the emitter cross-check every written checksum by
	// recomputing it from the emitted body region before returning.
	VerifyChecksums bool
	// OptimizeTableOrder is reserved; it does not affect output bytes under
	// the current planner.
	OptimizeTableOrder bool
}

// DefaultOptions returns the recommended options: 4-byte alignment, checksum
// verification on. A zero Options value differs: Compose reads its Alignment
// of 0 as 4 but leaves checksum verification off.
func DefaultOptions() Options {
	return Options{
		Alignment:          bodyAlignment,
		VerifyChecksums:    true,
		OptimizeTableOrder: true,
	}
}

// EmitResult is the outcome of a successful Compose run.
type EmitResult struct {
	Bytes      []byte
	BytesSaved int64 // vs. a hypothetical concatenation of the input fonts
	Report     *Report
	Format     Format
	Warnings   []string // non-fatal diagnostics, e.g. mixed-flavor OTC
}

// Tables this module considers the minimum for a viable font.
var requiredTables = []ot.Tag{ot.T("head"), ot.T("hhea"), ot.T("maxp")}

// Fonts at or above this count are fingerprinted in parallel.
const minParallelFonts = 8

// Compose builds a font collection from two or more parsed fonts.
//
// Fonts are borrowed for the duration of the call; their table bodies must
// not change until Compose returns. All errors are returned, nothing is
// logged or printed; warnings travel as a sideband list in the result.
func Compose(fonts []*ot.Font, format Format, opts Options) (*EmitResult, error) {
	if opts.Alignment == 0 {
		opts.Alignment = bodyAlignment
	}
	if opts.Alignment != bodyAlignment {
		return nil, errInputInvalid(-1, 0, "alignment %d not supported, only 4 is valid", opts.Alignment)
	}
	warnings, err := validate(fonts, format)
	if err != nil {
		return nil, err
	}
	index, err := buildIndex(fonts)
	if err != nil {
		return nil, err
	}
	report := Analyze(index)
	var out []byte
	switch format {
	case FormatTTC, FormatOTC:
		plan, err := PlanLayout(index, fonts)
		if err != nil {
			return nil, err
		}
		out, err = emitCollection(index, fonts, plan, opts)
		if err != nil {
			return nil, err
		}
	case FormatDfont:
		out, err = emitDfont(fonts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errInputInvalid(-1, 0, "unknown collection format %d", format)
	}
	return &EmitResult{
		Bytes:      out,
		BytesSaved: report.BytesSaved,
		Report:     report,
		Format:     format,
		Warnings:   warnings,
	}, nil
}

func buildIndex(fonts []*ot.Font) (*DedupIndex, error) {
	if len(fonts) >= minParallelFonts {
		return BuildIndexParallel(fonts, runtime.GOMAXPROCS(0))
	}
	return BuildIndex(fonts)
}

// validate is the pre-emit validation: enough fonts, minimum viable tables,
// and format/flavor compatibility. It runs before any fingerprinting.
func validate(fonts []*ot.Font, format Format) ([]string, error) {
	if len(fonts) < 2 {
		return nil, errInputInvalid(-1, 0, "a collection needs at least 2 fonts, got %d", len(fonts))
	}
	for i, f := range fonts {
		for _, tag := range requiredTables {
			if f.Table(tag) == nil {
				return nil, errInputInvalid(i, tag, "required table missing")
			}
		}
		if !ot.KnownVersion(f.SfntVersion()) {
			return nil, errInputInvalid(i, 0, "unknown sfnt version %08x", f.SfntVersion())
		}
	}
	var warnings []string
	switch format {
	case FormatTTC:
		for i, f := range fonts {
			if f.SfntVersion() == ot.VersionOpenType {
				return nil, errFormatIncompatible(i,
					"CFF-flavored font cannot join a TTC; use otc instead")
			}
		}
	case FormatOTC:
		// Mixing TrueType and CFF flavors is permitted by the format but
		// unusual enough to flag.
		var hasTT, hasCFF bool
		for _, f := range fonts {
			if f.SfntVersion() == ot.VersionOpenType {
				hasCFF = true
			} else {
				hasTT = true
			}
		}
		if hasTT && hasCFF {
			warnings = append(warnings,
				"collection mixes TrueType- and CFF-flavored fonts")
		}
	case FormatDfont:
		// any known signature goes
	default:
		return nil, errInputInvalid(-1, 0, "unknown collection format %d", format)
	}
	return warnings, nil
}

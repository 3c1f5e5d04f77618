package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/fontist/fontisan/internal/fontload"
	"github.com/fontist/fontisan/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'fontisan.tools'
func tracer() tracing.Trace {
	return tracing.Select("fontisan.tools")
}

func main() {
	setupTracing()

	commando.
		SetExecutableName("fc-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for composing and inspecting font collections.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("analyze").
		SetDescription("Analyze table sharing across fonts and preview the bytes a collection would save.").
		SetShortDescription("preview sharing").
		AddArgument("fonts...", "font files or family names (resolved via the system font path)", "").
		AddFlag("tags,t", "per-tag sharing breakdown", commando.Bool, nil).
		SetAction(runAnalyzeCommand)

	commando.
		Register("compose").
		SetDescription("Compose two or more fonts into a collection file (TTC, OTC or dfont).").
		SetShortDescription("compose collection").
		AddArgument("fonts...", "font files or family names (resolved via the system font path)", "").
		AddFlag("format,f", "output format: ttc|otc|dfont", commando.String, "ttc").
		AddFlag("output,o", "output collection file", commando.String, "out.ttc").
		AddFlag("no-verify", "skip checksum reverification of the emitted bytes", commando.Bool, nil).
		SetAction(runComposeCommand)

	commando.
		Register("inspect").
		SetDescription("Print the structure of a collection file: members, directories, sharing.").
		SetShortDescription("inspect collection").
		AddArgument("collection", "collection file (TTC/OTC)", "").
		AddFlag("tables,t", "print each member's table directory", commando.Bool, nil).
		SetAction(runInspectCommand)

	commando.Parse(nil)
}

// setupTracing wires the schuko tracing backbone to Go's standard logger.
func setupTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.fontisan.tools": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "error configuring tracing\n")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// resolveFontPath accepts either a path to a font file or a bare family
// name, which is searched on the system font path. Resolved files pass
// through a strict sanity parse before they reach the composer.
func resolveFontPath(spec string) string {
	if _, err := os.Stat(spec); err == nil {
		return spec
	}
	path, err := findfont.Find(spec)
	if err != nil {
		fatalf("cannot resolve font %q: %v", spec, err)
	}
	name, err := fontload.Sniff(path)
	if err != nil {
		fatalf("%q resolves to a file that does not parse as a font: %v", spec, err)
	}
	tracer().Infof("resolved %q to %s (%s)", spec, path, name)
	return path
}

// mustLoadFonts resolves and parses a comma/space separated list of font
// specs, as commando hands variadic arguments over.
func mustLoadFonts(raw string) ([]*ot.Font, []string) {
	specs := splitCSVSpace(raw)
	if len(specs) == 0 {
		fatalf("at least one font is required")
	}
	paths := make([]string, 0, len(specs))
	for _, spec := range specs {
		paths = append(paths, resolveFontPath(spec))
	}
	fonts, err := fontload.LoadComposerFonts(paths)
	if err != nil {
		fatalf("%v", err)
	}
	return fonts, paths
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fc-tools: "+format+"\n", args...)
	os.Exit(1)
}

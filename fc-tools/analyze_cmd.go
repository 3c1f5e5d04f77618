package main

import (
	"fmt"
	"strings"

	"github.com/fontist/fontisan/otcompose"
	"github.com/fontist/fontisan/otquery"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runAnalyzeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fonts, paths := mustLoadFonts(args["fonts"].Value)
	index, err := otcompose.BuildIndex(fonts)
	if err != nil {
		fatalf("%v", err)
	}
	report := otcompose.Analyze(index)

	data := [][]string{
		{"#", "Font", "Type", "Tables"},
	}
	for i, f := range fonts {
		name := otquery.FullName(f)
		if name == "" {
			name = paths[i]
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			name,
			otquery.FontType(f),
			fmt.Sprintf("%d", f.TableCount()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Printf("Table references: %d, distinct bodies: %d\n",
		report.TotalTables, report.DistinctTables)
	pterm.Printf("Sharing: %.2f%% of references point at a shared body\n",
		report.SharingPercentage)
	pterm.Info.Printf("A collection would save %d bytes\n", report.BytesSaved)

	if mustFlagBool(flags["tags"], "tags") {
		printTagSharing(report)
	}
}

func printTagSharing(report *otcompose.Report) {
	data := [][]string{
		{"Tag", "Bodies", "Sharing"},
	}
	for _, ts := range report.Tags {
		groups := make([]string, 0, len(ts.Groups))
		for _, g := range ts.Groups {
			groups = append(groups, fmt.Sprintf("%dB x %d", g.Size, len(g.Fonts)))
		}
		data = append(data, []string{
			ts.Tag.String(),
			fmt.Sprintf("%d", len(ts.Groups)),
			strings.Join(groups, ", "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

package main

import (
	"fmt"
	"os"

	"github.com/fontist/fontisan/ot"
	"github.com/fontist/fontisan/otcompose"
	"github.com/fontist/fontisan/otquery"
	"github.com/pterm/pterm"
)

func printHelp() {
	pterm.Println("Commands:")
	pterm.Println("  open <file>               open a collection file (TTC/OTC)")
	pterm.Println("  fonts                     list member fonts")
	pterm.Println("  tables <i>                print table directory of member i")
	pterm.Println("  stats                     table sharing statistics")
	pterm.Println("  extract <i> <file>        write member i as a standalone font")
	pterm.Println("  help                      this text")
	pterm.Println("  quit                      leave")
}

func printFontList(coll *ot.Collection) {
	data := [][]string{
		{"#", "Font", "Type", "Tables"},
	}
	for i, f := range coll.Fonts {
		name := otquery.FullName(f)
		if name == "" {
			name = fmt.Sprintf("font #%d", i)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			name,
			otquery.FontType(f),
			fmt.Sprintf("%d", f.TableCount()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTableList(f *ot.Font) {
	data := [][]string{
		{"Tag", "Offset", "Length"},
	}
	for _, tag := range f.TableTags() {
		off, size := f.Table(tag).Extent()
		data = append(data, []string{
			tag.String(),
			fmt.Sprintf("%d", off),
			fmt.Sprintf("%d", size),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printStats rebuilds the dedup view over the opened collection's members.
// Members of a well-composed collection share table bodies on disk; the
// index groups them the same way by content.
func printStats(coll *ot.Collection) error {
	index, err := otcompose.BuildIndex(coll.Fonts)
	if err != nil {
		return err
	}
	report := otcompose.Analyze(index)
	pterm.Printf("Fonts: %d, table references: %d, distinct bodies: %d\n",
		report.TotalFonts, report.TotalTables, report.DistinctTables)
	pterm.Printf("Sharing: %.2f%% of references point at a shared body\n",
		report.SharingPercentage)
	pterm.Printf("Sharing saves %d bytes over storing every reference\n", report.BytesSaved)
	return nil
}

func extractMember(f *ot.Font, path string) error {
	b, err := otcompose.SerializeFont(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return err
	}
	pterm.Info.Printf("wrote %s (%d bytes)\n", path, len(b))
	return nil
}

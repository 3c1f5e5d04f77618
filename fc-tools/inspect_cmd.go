package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fontist/fontisan/ot"
	"github.com/fontist/fontisan/otquery"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path := strings.TrimSpace(args["collection"].Value)
	if path == "" {
		fatalf("collection path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read %s: %v", path, err)
	}
	coll, err := ot.ParseCollection(b)
	if err != nil {
		fatalf("cannot parse %s: %v", path, err)
	}
	pterm.Printf("%s: %s\n", path, coll.String())

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

	if mustFlagBool(flags["tables"], "tables") {
		for i, f := range coll.Fonts {
			printMemberDirectory(i, f)
		}
	}
}

func printMemberDirectory(index int, f *ot.Font) {
	pterm.Printf("font #%d directory:\n", index)
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

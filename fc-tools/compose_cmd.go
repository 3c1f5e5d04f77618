package main

import (
	"os"

	"github.com/fontist/fontisan/otcompose"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runComposeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fonts, _ := mustLoadFonts(args["fonts"].Value)
	format, err := otcompose.ParseFormat(mustFlagString(flags["format"], "format"))
	if err != nil {
		fatalf("%v", err)
	}
	opts := otcompose.DefaultOptions()
	if mustFlagBool(flags["no-verify"], "no-verify") {
		opts.VerifyChecksums = false
	}
	result, err := otcompose.Compose(fonts, format, opts)
	if err != nil {
		fatalf("%v", err)
	}
	for _, warning := range result.Warnings {
		pterm.Warning.Println(warning)
	}
	output := mustFlagString(flags["output"], "output")
	if err := os.WriteFile(output, result.Bytes, 0644); err != nil {
		fatalf("cannot write %s: %v", output, err)
	}
	pterm.Info.Printf("wrote %s: %d fonts, %d bytes, %d bytes saved by sharing\n",
		output, len(fonts), len(result.Bytes), result.BytesSaved)
}

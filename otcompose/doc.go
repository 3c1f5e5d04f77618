/*
Package otcompose composes two or more SFNT fonts into a single font
collection file (TTC/OTC) or an Apple dfont.

The composer identifies byte-identical tables shared across the input fonts
and emits each distinct table body exactly once, while every member font
keeps its own table directory pointing at the shared bodies. Composing is a
five-stage pipeline:

▪︎ fingerprint every table body (SHA-256),

▪︎ group tables by (tag, digest) into canonical entries,

▪︎ report sharing statistics (before any byte is written, so that clients can
preview savings),

▪︎ solve the complete file layout — header, per-font directories, alignment
padding, shared and unique table bodies — deterministically,

▪︎ emit the planned bytes, including per-entry OpenType table checksums.

All stages are pure functions over their inputs. Two calls of Compose with
identical inputs return identical bytes; every iteration that contributes to
output order is sorted by (tag, digest), never driven by map iteration.

Table bodies are opaque throughout: the composer never re-encodes or
transforms a table, and only byte-equality (never semantic equivalence)
makes two tables shareable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package otcompose

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontisan.compose'
func tracer() tracing.Trace {
	return tracing.Select("fontisan.compose")
}

func assertEqualUint32(name string, a, b uint32) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}

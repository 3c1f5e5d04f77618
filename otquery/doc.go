/*
Package otquery provides read-only queries over container-level fonts.

The collection composer treats table bodies as opaque, but tooling around it
wants to talk about fonts by name and flavor: "Helvetica Bold, TrueType",
not "font #3, version 0x00010000". This package decodes just enough of the
'name' table (Unicode/Windows BMP records, UTF-16BE) to label fonts in
reports and listings, and classifies the font flavor from the version
signature.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontisan.query'
func tracer() tracing.Trace {
	return tracing.Select("fontisan.query")
}

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

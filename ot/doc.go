/*
Package ot provides container-level access to SFNT fonts.

SFNT is the envelope format underlying both TrueType and OpenType fonts:
a directory of tagged tables at offsets. Package `ot` parses that envelope —
the font header, the table directory, and the extent of each table — and
exposes every table as an opaque byte segment. It deliberately does not
interpret table contents: composing fonts into collections treats each table
as a byte sequence whose content, not its meaning, determines identity.
Clients needing decoded font names or the font flavor should look at
package `otquery`.

Besides single fonts, the package reads font collection files (TTC/OTC),
yielding one Font per collection member. Member fonts of a collection may
share table bodies; the returned Fonts simply hold views into the same
underlying bytes.

Fonts can also be assembled in memory, table by table, via NewFont and
AddTable. This is the input side of the collection composer in package
`otcompose`: a composer client constructs (or parses) N fonts and hands them
over for deduplication and emission.

# Status

Variable fonts receive no special treatment; their tables travel through
untouched, like any other table.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontisan.ot'
func tracer() tracing.Trace {
	return tracing.Select("fontisan.ot")
}

func assertEqualInt(name string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}

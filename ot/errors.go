package ot

import "fmt"

// FontIssue records a defect found while reading a font's SFNT envelope.
// A fatal issue aborts parsing and is returned as the error from Parse;
// the rest are collected on the Font and can be inspected after parsing
// returns.
type FontIssue struct {
	Table  Tag    // the table concerned, or 0 for the container itself
	Offset uint32 // byte position in the file, 0 if unknown
	Fatal  bool
	Issue  string // human-readable description
}

// Error implements the error interface.
func (is FontIssue) Error() string {
	where := "font container"
	if is.Table != 0 {
		where = "table " + is.Table.String()
	}
	if is.Offset > 0 {
		return fmt.Sprintf("OpenType font format: %s at offset %d: %s", where, is.Offset, is.Issue)
	}
	return fmt.Sprintf("OpenType font format: %s: %s", where, is.Issue)
}

// issueLog accumulates issues while a font is parsed. The parser threads one
// log through all parsing steps of a font and attaches the collected issues
// to the Font when it survives.
type issueLog struct {
	issues []FontIssue
}

// fail records a fatal issue and returns it as the error aborting the parse.
func (lg *issueLog) fail(table Tag, offset uint32, format string, args ...interface{}) error {
	is := FontIssue{
		Table:  table,
		Offset: offset,
		Fatal:  true,
		Issue:  fmt.Sprintf(format, args...),
	}
	lg.issues = append(lg.issues, is)
	return is
}

// warn records a non-fatal issue; parsing continues.
func (lg *issueLog) warn(table Tag, offset uint32, format string, args ...interface{}) {
	lg.issues = append(lg.issues, FontIssue{
		Table:  table,
		Offset: offset,
		Issue:  fmt.Sprintf(format, args...),
	})
}

package fontload

import (
	"fmt"
	"os"

	"github.com/fontist/fontisan/ot"
	"golang.org/x/image/font/sfnt"
)

// Loading font files for the composing toolchain.

// LoadComposerFonts reads the given font files and parses each to the
// container-level view that the collection composer consumes. Order is
// preserved: member #i of a composed collection corresponds to paths[i].
func LoadComposerFonts(paths []string) ([]*ot.Font, error) {
	fonts := make([]*ot.Font, 0, len(paths))
	for _, path := range paths {
		bytez, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		otf, err := ot.Parse(bytez)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		fonts = append(fonts, otf)
	}
	return fonts, nil
}

// Sniff runs a font file through x/image's semantic SFNT parser, which
// rejects fonts whose required tables are malformed, and returns the full
// font name it reports (best-effort, may be empty). The container-level
// parser accepts any well-formed envelope regardless of table contents;
// Sniff is the stricter gate for fonts resolved from a system font path.
func Sniff(path string) (string, error) {
	bytez, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	f, err := sfnt.Parse(bytez)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	name, _ := f.Name(nil, sfnt.NameIDFull)
	return name, nil
}

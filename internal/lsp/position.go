package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pasc/internal/diag"
)

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// byteColToUTF16 converts a 1-based byte column into the 0-based UTF-16
// offset LSP clients expect.
func byteColToUTF16(lineText string, byteCol int) uint32 {
	if byteCol <= 1 {
		return 0
	}
	limit := byteCol - 1
	if limit > len(lineText) {
		limit = len(lineText)
	}
	var count uint32
	for _, r := range lineText[:limit] {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		count += uint32(n)
	}
	return count
}

// diagnosticRange maps a 1-based byte range to an LSP range on the same
// line.
func diagnosticRange(text string, r diag.Range) protocol.Range {
	line := r.Line
	if line < 1 {
		line = 1
	}
	var start uint32
	if lines := splitLines(text); line <= len(lines) {
		start = byteColToUTF16(lines[line-1], r.Col)
	} else if r.Col > 1 {
		start = uint32(r.Col - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1), Character: start},
		End:   protocol.Position{Line: uint32(line - 1), Character: start + uint32(max(1, r.Length))},
	}
}

package lsp

import (
	"cmp"
	"slices"
)

// EncodeSemanticTokens sorts toks by position and packs them into the LSP
// relative encoding: five integers per token, line and start column as
// deltas from the previous token.
func EncodeSemanticTokens(toks []SemTok) []uint32 {
	slices.SortFunc(toks, func(a, b SemTok) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})

	data := make([]uint32, 0, 5*len(toks))
	prevLine, prevCol := 1, 1
	for _, t := range toks {
		if t.Length <= 0 {
			continue
		}
		deltaLine := t.Line - prevLine
		deltaCol := t.Col - 1
		if deltaLine == 0 {
			deltaCol = t.Col - prevCol
		}
		data = append(data, uint32(deltaLine), uint32(deltaCol), uint32(t.Length), uint32(t.Type), uint32(t.Mods))
		prevLine, prevCol = t.Line, t.Col
	}
	return data
}

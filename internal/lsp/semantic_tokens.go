package lsp

import (
	"pasc/internal/lexer"
	"pasc/internal/token"
)

// classifier tracks just enough of the declaration structure to tell
// routines, parameters and declarations apart while scanning tokens.
type classifier struct {
	routines map[string]bool
	params   map[string]bool

	prev       token.Type
	named      bool // previous token declared a routine
	inParams   bool
	inVars     bool
	declaring  bool
	inRoutine  bool
	blockDepth int
}

// SemanticTokensForText returns unencoded semantic tokens for the given source text.
func SemanticTokensForText(text string) []SemTok {
	lx := lexer.New(text)
	c := &classifier{routines: map[string]bool{}}
	sem := make([]SemTok, 0, 256)

	for {
		tok := lx.NextToken()
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			break
		}
		if st, ok := c.classify(tok); ok {
			sem = append(sem, st)
		}
		c.advance(tok)
	}

	return sem
}

func (c *classifier) classify(tok token.Token) (SemTok, bool) {
	tt, ok := Classify(tok)
	if !ok {
		return SemTok{}, false
	}
	mods := 0
	if tok.Type == token.IDENT {
		name := tok.Literal
		switch {
		case c.prev == token.FUNCTION || c.prev == token.PROCEDURE:
			tt, mods = ttFunction, modDecl
			c.routines[name] = true
		case c.inParams && c.declaring:
			tt, mods = ttParameter, modDecl
			c.params[name] = true
		case c.declaring:
			mods = modDecl
		case c.params[name]:
			tt = ttParameter
		case c.routines[name]:
			tt = ttFunction
		}
	}
	return SemTok{
		Line:   tok.Line,
		Col:    tok.Col,
		Length: max(1, len(tok.Literal)),
		Type:   tt,
		Mods:   mods,
	}, true
}

func (c *classifier) advance(tok token.Token) {
	named := false
	switch tok.Type {
	case token.IDENT:
		if c.prev == token.FUNCTION || c.prev == token.PROCEDURE {
			named = true
			c.inRoutine = true
			c.params = map[string]bool{}
		}
	case token.LPAREN:
		if c.named {
			c.inParams, c.declaring = true, true
		}
	case token.RPAREN:
		if c.inParams {
			c.inParams, c.declaring = false, false
		}
	case token.COLON:
		c.declaring = false
	case token.SEMICOLON:
		if c.inParams || c.inVars {
			c.declaring = true
		}
	case token.VAR:
		c.inVars, c.declaring = true, true
	case token.FUNCTION, token.PROCEDURE:
		c.inVars, c.declaring = false, false
	case token.BEGIN:
		c.inVars, c.declaring = false, false
		c.blockDepth++
	case token.END:
		c.blockDepth--
		if c.blockDepth == 0 && c.inRoutine {
			c.inRoutine = false
			c.params = nil
		}
	}
	c.named = named
	c.prev = tok.Type
}

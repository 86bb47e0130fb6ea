package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/JohnAD/slone/token"
)

// The legend index order here must match semanticTokenTypes.
const (
	tokKeyword uint32 = iota
	tokString
	tokProperty
	tokOperator
)

var semanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenOperator,
}

type semTok struct {
	line, char, length, typ uint32
}

// collectSemanticTokens classifies the raw token stream: punctuation is
// an operator, a quoted string followed by "=" is an entry name, any
// other quoted string is a value or fragment. The header and schema
// lines are keywords.
func (s *Server) collectSemanticTokens(doc *document) []uint32 {
	var list []semTok
	content := doc.content
	i := strings.IndexByte(content, '\n')
	if i < 0 || content[:i] != token.Header {
		return encodeSemTokens(list)
	}
	list = append(list, semTok{0, 0, uint32(len([]rune(token.Header))), tokKeyword})
	body := content[i+1:]
	line := 1
	if strings.HasPrefix(body, token.SchemaMarker) {
		j := strings.IndexByte(body, '\n')
		if j < 0 {
			return encodeSemTokens(list)
		}
		list = append(list, semTok{1, 0, uint32(len([]rune(body[:j]))), tokKeyword})
		body = body[j+1:]
		line = 2
	}
	toks, err := token.Tokenize([]byte(body), token.StartLine(line))
	if err != nil {
		return encodeSemTokens(list)
	}
	for k := range toks {
		tok := &toks[k]
		var typ uint32
		switch tok.Type {
		case token.TPunct:
			typ = tokOperator
		case token.TString:
			typ = tokString
			if nextIsAssign(toks, k) {
				typ = tokProperty
			}
		default:
			continue
		}
		list = append(list, semTok{
			line:   uint32(tok.Pos.Line),
			char:   uint32(tok.Pos.Col),
			length: uint32(len([]rune(string(tok.Bytes)))),
			typ:    typ,
		})
	}
	return encodeSemTokens(list)
}

func nextIsAssign(toks []token.Token, i int) bool {
	if i+1 >= len(toks) {
		return false
	}
	nxt := &toks[i+1]
	return nxt.Type == token.TPunct && string(nxt.Bytes) == token.PunctAssign
}

// encodeSemTokens applies the LSP delta encoding. The token stream is
// already in position order.
func encodeSemTokens(list []semTok) []uint32 {
	data := []uint32{}
	var prevLine, prevChar uint32
	for _, ti := range list {
		deltaLine := ti.line - prevLine
		deltaChar := ti.char
		if deltaLine == 0 {
			deltaChar = ti.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, ti.length, ti.typ, 0)
		prevLine = ti.line
		prevChar = ti.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: s.collectSemanticTokens(doc)}, nil
}

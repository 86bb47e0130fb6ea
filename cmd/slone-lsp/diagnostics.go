package main

import (
	"context"
	"errors"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/parse"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	tree    *ir.Tree // nil when the content does not parse
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	tree, err := parse.Parse([]byte(content))
	if err != nil {
		tree = nil
	}
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		tree:    tree,
		err:     err,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: s.validateDocument(doc),
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "slone",
	}
	var ge *parse.GrammarError
	if errors.As(doc.err, &ge) {
		diagnostic.Range = protocol.Range{
			Start: protocol.Position{
				Line:      uint32(ge.Pos.Line),
				Character: uint32(ge.Pos.Col),
			},
			End: protocol.Position{
				Line:      uint32(ge.Pos.Line),
				Character: uint32(ge.Pos.Col + 1),
			},
		}
	}
	return append(diagnostics, diagnostic)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		r := change.Range
		if r.Start == r.End && r.Start.Line == 0 && r.Start.Character == 0 {
			content = change.Text
			continue
		}
		runes := []rune(content)
		start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
		end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
		if start <= len(runes) && end <= len(runes) && start <= end {
			content = string(runes[:start]) + change.Text + string(runes[end:])
		}
	}
	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// lineColToOffset maps a zero-based line/column to a rune offset.
func lineColToOffset(content string, line, col int) int {
	curLine, curCol, off := 0, 0, 0
	for _, r := range content {
		if curLine == line && curCol == col {
			return off
		}
		if r == '\n' {
			curLine++
			curCol = 0
		} else {
			curCol++
		}
		off++
	}
	return off
}

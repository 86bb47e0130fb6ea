package main

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/JohnAD/slone/debug"
)

type Server struct {
	conn jsonrpc2.Conn
	docs *documentStore
}

func NewServer(conn jsonrpc2.Conn) *Server {
	return &Server{
		conn: conn,
		docs: &documentStore{docs: map[string]*document{}},
	}
}

func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if debug.LSP() {
		debug.Logf("lsp <- %s\n", req.Method())
	}
	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, s.initializeResult(), nil)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		return s.conn.Close()
	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, nil, s.DidOpen(ctx, &params))
	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, nil, s.DidChange(ctx, &params))
	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, nil, s.DidClose(ctx, &params))
	case protocol.MethodTextDocumentFormatting:
		var params protocol.DocumentFormattingParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		res, err := s.Formatting(ctx, &params)
		return reply(ctx, res, err)
	case protocol.MethodSemanticTokensFull:
		var params protocol.SemanticTokensParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		res, err := s.SemanticTokensFull(ctx, &params)
		return reply(ctx, res, err)
	default:
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
}

func (s *Server) initializeResult() *protocol.InitializeResult {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DocumentFormattingProvider: true,
			SemanticTokensProvider: map[string]interface{}{
				"legend": protocol.SemanticTokensLegend{
					TokenTypes:     semanticTokenTypes,
					TokenModifiers: []protocol.SemanticTokenModifiers{},
				},
				"full": true,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "slone-lsp",
			Version: "0.1.0",
		},
	}
}

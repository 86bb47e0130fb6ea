// slone-lsp is a language server for SLONE documents speaking LSP over
// stdio. It publishes grammar diagnostics, formats documents to
// canonical form, and provides semantic tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"go.lsp.dev/jsonrpc2"
)

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

func main() {
	gops := flag.Bool("gops", false, "start a gops agent for live inspection")
	flag.Parse()
	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent: %v\n", err)
			os.Exit(1)
		}
		defer agent.Close()
	}
	ctx := context.Background()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(stdrwc{}))
	srv := NewServer(conn)
	conn.Go(ctx, srv.Handle)
	<-conn.Done()
	if err := conn.Err(); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "connection: %v\n", err)
		os.Exit(1)
	}
}
